// Package timezone pins every wall-clock value the hotel handles to one
// configured location (APP_TIMEZONE, IANA names only).
//
// Booking check-in and check-out values arrive either as RFC3339 timestamps
// or as calendar dates. ParseDate reads a bare date as midnight in the hotel's
// location, so "2025-03-01" means the same instant whether it came from a
// booking form or an admin filter:
//
//	checkIn, err := timezone.ParseDate("2025-03-01")
//
// Now and Format are used for audit columns and response rendering.
// An unknown zone name falls back to UTC with an error log.
package timezone
