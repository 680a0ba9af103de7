package model

import "time"

const EntityName = "notification"

type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventContactReceived      EventType = "contact.received"
)

// Event is the payload published on the domain events topic.
type Event struct {
	Type       EventType `json:"type"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

const (
	SubjectContactReceived = "We received your message - Hotel Management"
	SubjectBookingCreated  = "Booking received - Hotel Management"
	SubjectBookingStatus   = "Booking update - Hotel Management"

	bodySignature = "\n\nBest regards,\nHotel Management Team"

	BodyContactReceived = "Dear %s,\n\nThank you for contacting us. We have received your message and will get back to you soon." + bodySignature
	BodyBookingCreated  = "Dear %s,\n\nThank you for your booking of room %s from %s to %s. Your booking is pending confirmation." + bodySignature
	BodyBookingStatus   = "Dear %s,\n\nYour booking of room %s from %s to %s is now %s." + bodySignature
)
