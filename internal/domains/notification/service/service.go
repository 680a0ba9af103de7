package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/kafka"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	bookingDto "hotel/internal/domains/booking/model/dto"
	contactDto "hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/notification/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Notifier fans domain events out to email and the event stream. Failures are
// logged and never reach the caller.
type Notifier interface {
	BookingCreated(ctx context.Context, booking bookingDto.BookingResponse)
	BookingStatusChanged(ctx context.Context, booking bookingDto.BookingResponse)
	ContactReceived(ctx context.Context, contact contactDto.ContactResponse)
}

type serviceImpl struct {
	mailer mailer.Mailer
	kafka  kafka.Client
	otel   otel.Otel
}

func New(mailer mailer.Mailer, kafka kafka.Client, otel otel.Otel) Notifier {
	return &serviceImpl{
		mailer: mailer,
		kafka:  kafka,
		otel:   otel,
	}
}

func (s *serviceImpl) BookingCreated(ctx context.Context, booking bookingDto.BookingResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingCreated")
	defer scope.End()

	s.publish(ctx, model.EventBookingCreated, booking.ID, booking)

	if booking.User == nil || booking.Room == nil {
		return
	}

	s.send(ctx, mailer.Email{
		To:      booking.User.Email,
		Subject: model.SubjectBookingCreated,
		Body: fmt.Sprintf(model.BodyBookingCreated,
			booking.User.FirstName, booking.Room.RoomNumber, stayDay(booking.CheckInDate), stayDay(booking.CheckOutDate)),
	})
}

func (s *serviceImpl) BookingStatusChanged(ctx context.Context, booking bookingDto.BookingResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingStatusChanged")
	defer scope.End()

	s.publish(ctx, model.EventBookingStatusChanged, booking.ID, booking)

	if booking.User == nil || booking.Room == nil {
		return
	}

	s.send(ctx, mailer.Email{
		To:      booking.User.Email,
		Subject: model.SubjectBookingStatus,
		Body: fmt.Sprintf(model.BodyBookingStatus,
			booking.User.FirstName, booking.Room.RoomNumber, stayDay(booking.CheckInDate), stayDay(booking.CheckOutDate), booking.Status),
	})
}

func (s *serviceImpl) ContactReceived(ctx context.Context, contact contactDto.ContactResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".ContactReceived")
	defer scope.End()

	s.publish(ctx, model.EventContactReceived, contact.ID, contact)

	s.send(ctx, mailer.Email{
		To:      contact.Email,
		Subject: model.SubjectContactReceived,
		Body:    fmt.Sprintf(model.BodyContactReceived, contact.Name),
	})
}

func (s *serviceImpl) publish(ctx context.Context, eventType model.EventType, entityID string, data any) {
	event := model.Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: timezone.Now(),
		Data:       data,
	}

	if err := s.kafka.SendMessages(ctx, kafka.Message{Key: entityID, Value: event}); err != nil {
		log.Error().Err(err).Str("event", string(eventType)).Str("id", entityID).Msg("failed to publish event")
	}
}

func (s *serviceImpl) send(ctx context.Context, email mailer.Email) {
	if !s.mailer.Enabled() || email.To == constant.Empty {
		log.Debug().Str("subject", email.Subject).Msg("skipping email")

		return
	}

	if err := s.mailer.Send(ctx, email); err != nil {
		log.Error().Err(err).Str("to", email.To).Msg("failed to send email")
	}
}

// stayDay renders a booking timestamp as a calendar date for emails.
func stayDay(value string) string {
	t, err := timezone.ParseDate(value)
	if err != nil {
		return value
	}

	return timezone.Format(t, constant.DateOnlyFormat)
}
