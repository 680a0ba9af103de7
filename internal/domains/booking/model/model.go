package model

import (
	gDto "hotel/shared/dto"
	"hotel/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldRoomID          = "room_id"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldNumberOfGuests  = "number_of_guests"
	FieldTotalPrice      = "total_price"
	FieldSpecialRequests = "special_requests"
	FieldStatus          = "status"
	FieldPaymentStatus   = "payment_status"
)

const (
	MsgNotFound          = "Booking not found"
	MsgCancelled         = "Booking cancelled successfully"
	MsgAlreadyBooked     = "Room is already booked for these dates"
	MsgInvalidDateRange  = "Check-out date must be after check-in date"
	MsgRoomNotFound      = "Room not found"
	MsgRoomNotAvailable  = "Room is not available"
	MsgInvalidTransition = "Booking status cannot change from %s to %s"
	MsgSystemIdentity    = "Bookings must be placed from a user or admin account"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// LiveStatuses hold a room; only they take part in the overlap check.
var LiveStatuses = []Status{StatusPending, StatusConfirmed}

// transitions lets administrators move a booking between any two statuses,
// including back from cancelled.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusCancelled: {StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusCompleted: {StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]

	return ok
}

func (s Status) IsLive() bool {
	return slices.Contains(LiveStatuses, s)
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}

	return false
}

type Booking struct {
	ID              string        `db:"id"`
	UserID          string        `db:"user_id"`
	RoomID          string        `db:"room_id"`
	CheckInDate     time.Time     `db:"check_in_date"`
	CheckOutDate    time.Time     `db:"check_out_date"`
	NumberOfGuests  int           `db:"number_of_guests"`
	TotalPrice      float64       `db:"total_price"`
	SpecialRequests string        `db:"special_requests"`
	Status          Status        `db:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	model.Metadata
}

// HasValidDates reports whether check-out is strictly after check-in.
func (b *Booking) HasValidDates() bool {
	return b.CheckOutDate.After(b.CheckInDate)
}

// Overlaps uses closed intervals: a stay ending on the day another starts conflicts.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return !b.CheckInDate.After(checkOut) && !checkIn.After(b.CheckOutDate)
}

// OverlapFilter selects the live bookings of a room that overlap [checkIn, checkOut],
// mirroring Overlaps. excludeID leaves the booking being edited out of the check.
func OverlapFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	statuses := make([]string, len(LiveStatuses))
	for i, status := range LiveStatuses {
		statuses[i] = string(status)
	}

	group := gDto.And(
		gDto.Filter{Field: FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: TableName},
		gDto.Filter{Field: FieldStatus, Value: statuses, Operator: gDto.FilterOperatorIn, Table: TableName},
		gDto.Filter{Field: FieldCheckInDate, ArgName: "requested_check_out", Value: checkOut, Operator: gDto.FilterOperatorLessEq, Table: TableName},
		gDto.Filter{Field: FieldCheckOutDate, ArgName: "requested_check_in", Value: checkIn, Operator: gDto.FilterOperatorGreaterEq, Table: TableName},
	)

	if excludeID != "" {
		group.Add(gDto.Filter{Field: FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: TableName})
	}

	return group
}

// RevenueFilter selects the bookings that count as earned revenue.
func RevenueFilter() gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: FieldStatus, Value: string(StatusCompleted), Operator: gDto.FilterOperatorEq, Table: TableName},
		gDto.Filter{Field: FieldPaymentStatus, Value: string(PaymentStatusPaid), Operator: gDto.FilterOperatorEq, Table: TableName},
	)
}

// StatusFilter selects the bookings currently in status.
func StatusFilter(status Status) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: FieldStatus, Value: string(status), Operator: gDto.FilterOperatorEq, Table: TableName})
}
