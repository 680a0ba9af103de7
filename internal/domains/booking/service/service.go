package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/prometheus"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	notificationService "hotel/internal/domains/notification/service"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	recentBookingsLimit = 5

	metricCreated       = "created"
	metricConflict      = "conflict"
	metricCancelled     = "cancelled"
	metricUpdated       = "updated"
	metricStatusChanged = "status_changed"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByUser(ctx context.Context, userID string) ([]dto.BookingResponse, error)
	GetAll(ctx context.Context, filter gDto.FilterGroup) ([]dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	DashboardStats(ctx context.Context) (dto.DashboardStatsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	userRepo   userRepo.User
	transactor postgres.Transactor
	notifier   notificationService.Notifier
	metrics    prometheus.Metrics
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	transactor postgres.Transactor,
	notifier notificationService.Notifier,
	metrics prometheus.Metrics,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		userRepo:   userRepo,
		transactor: transactor,
		notifier:   notifier,
		metrics:    metrics,
		otel:       otel,
	}
}

// Create books a room. The room row is locked for the whole check so the
// availability and overlap rules see a stable view.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.ContextSystem {
		return res, failure.Forbidden(model.MsgSystemIdentity) // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var room roomModel.Room

	err = s.transactor.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		found, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		room = found

		if room.ID == constant.Empty {
			return failure.NotFound(model.MsgRoomNotFound) // nolint:wrapcheck
		}

		if !room.IsAvailable {
			return failure.InvalidState(model.MsgRoomNotAvailable) // nolint:wrapcheck
		}

		overlapping, err := s.repo.ExistTx(ctx, tx, model.OverlapFilter(room.ID, booking.CheckInDate, booking.CheckOutDate, constant.Empty))
		if err != nil {
			log.Error().Err(err).Msg("failed to check overlapping bookings")

			return fmt.Errorf("failed to check overlapping bookings: %w", err)
		}

		if overlapping {
			return failure.Conflict(model.MsgAlreadyBooked) // nolint:wrapcheck
		}

		if !booking.HasValidDates() {
			return failure.BadRequestFromString(model.MsgInvalidDateRange) // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, s.conflictAware(err)
	}

	s.metrics.ObserveBooking(metricCreated)

	res.FromModel(booking)
	res.Room = roomResponse(room)
	res.User = s.contact(ctx, booking.UserID)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.BookingCreated(c, res)
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	populated, err := s.populate(ctx, []model.Booking{booking}, userModel.ContactColumns)
	if err != nil {
		return res, err
	}

	return populated[0], nil
}

// GetByUser lists a guest's bookings newest first, joined with their rooms.
func (s *serviceImpl) GetByUser(ctx context.Context, userID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetByUser")
	defer scope.End()
	defer scope.TraceIfError(&err)

	// the API key identity never owns bookings
	if userID == constant.ContextSystem {
		return []dto.BookingResponse{}, nil
	}

	bookings, err := s.repo.GetAll(ctx, gDto.NewestFirst(), dto.UserBookingsFilter(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	return s.populate(ctx, bookings, nil)
}

func (s *serviceImpl) GetAll(ctx context.Context, filter gDto.FilterGroup) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	bookings, err := s.repo.GetAll(ctx, gDto.NewestFirst(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	return s.populate(ctx, bookings, userModel.ContactColumns)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	res, err = s.update(ctx, req, id)
	if err != nil {
		return res, err
	}

	s.metrics.ObserveBooking(metricUpdated)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	status := req.Status

	res, err = s.update(ctx, dto.UpdateBookingRequest{Status: &status}, id)
	if err != nil {
		return res, err
	}

	s.metrics.ObserveBooking(metricStatusChanged)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.BookingStatusChanged(c, res)
	}()

	return res, nil
}

// Cancel marks the booking cancelled whatever its current status. The row is kept.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	cancelled := model.StatusCancelled
	fields := shared.TransformFields(dto.UpdateBookingRequest{Status: &cancelled}, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.metrics.ObserveBooking(metricCancelled)

	return nil
}

// DashboardStats is computed on every call; it is never cached.
func (s *serviceImpl) DashboardStats(ctx context.Context) (res dto.DashboardStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.DashboardStats")
	defer scope.End()
	defer scope.TraceIfError(&err)

	bookingCounts := []struct {
		target *int
		filter gDto.FilterGroup
	}{
		{&res.TotalBookings, gDto.And()},
		{&res.PendingBookings, model.StatusFilter(model.StatusPending)},
		{&res.ConfirmedBookings, model.StatusFilter(model.StatusConfirmed)},
		{&res.CancelledBookings, model.StatusFilter(model.StatusCancelled)},
		{&res.CompletedBookings, model.StatusFilter(model.StatusCompleted)},
	}

	for _, count := range bookingCounts {
		if *count.target, err = s.repo.Count(ctx, count.filter); err != nil {
			log.Error().Err(err).Msg("failed to count bookings")

			return res, fmt.Errorf("failed to count bookings: %w", err)
		}
	}

	if res.TotalRooms, err = s.roomRepo.Count(ctx, gDto.And()); err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	availableRooms := gDto.And(gDto.Filter{Field: roomModel.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName})
	if res.AvailableRooms, err = s.roomRepo.Count(ctx, availableRooms); err != nil {
		log.Error().Err(err).Msg("failed to count available rooms")

		return res, fmt.Errorf("failed to count available rooms: %w", err)
	}

	if res.TotalRevenue, err = s.repo.Sum(ctx, model.FieldTotalPrice, model.RevenueFilter()); err != nil {
		log.Error().Err(err).Msg("failed to sum revenue")

		return res, fmt.Errorf("failed to sum revenue: %w", err)
	}

	recentParams := gDto.NewestFirst()
	recentParams.Page = 1
	recentParams.Limit = recentBookingsLimit

	recent, err := s.repo.GetAll(ctx, recentParams, gDto.And())
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent bookings")

		return res, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	if res.RecentBookings, err = s.populate(ctx, recent, userModel.SummaryColumns); err != nil {
		return res, err
	}

	return res, nil
}

// update applies a patch under a row lock. A booking that ends up live with a
// new stay or a revived status is checked against the room's other live bookings.
func (s *serviceImpl) update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var updated model.Booking

	err = s.transactor.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound(model.MsgNotFound) // nolint:wrapcheck
		}

		updated, err = req.Apply(current)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		if !current.Status.CanTransitionTo(updated.Status) {
			return failure.InvalidState(fmt.Sprintf(model.MsgInvalidTransition, current.Status, updated.Status)) // nolint:wrapcheck
		}

		if !updated.HasValidDates() {
			return failure.BadRequestFromString(model.MsgInvalidDateRange) // nolint:wrapcheck
		}

		if needsOverlapCheck(current, updated) {
			overlapping, err := s.repo.ExistTx(ctx, tx, model.OverlapFilter(updated.RoomID, updated.CheckInDate, updated.CheckOutDate, updated.ID))
			if err != nil {
				log.Error().Err(err).Msg("failed to check overlapping bookings")

				return fmt.Errorf("failed to check overlapping bookings: %w", err)
			}

			if overlapping {
				return failure.Conflict(model.MsgAlreadyBooked) // nolint:wrapcheck
			}
		}

		fields := shared.TransformFields(req, user)
		fields[model.FieldCheckInDate] = updated.CheckInDate
		fields[model.FieldCheckOutDate] = updated.CheckOutDate

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, s.conflictAware(err)
	}

	return s.Get(ctx, id)
}

func needsOverlapCheck(current, updated model.Booking) bool {
	if !updated.Status.IsLive() {
		return false
	}

	datesChanged := !current.CheckInDate.Equal(updated.CheckInDate) || !current.CheckOutDate.Equal(updated.CheckOutDate)

	return datesChanged || !current.Status.IsLive()
}

// conflictAware reports overlaps rejected by the exclusion constraint with the
// booking message.
func (s *serviceImpl) conflictAware(err error) error {
	if failure.Is(err, failure.KindConflict) {
		s.metrics.ObserveBooking(metricConflict)

		return failure.Conflict(model.MsgAlreadyBooked) // nolint:wrapcheck
	}

	return err
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(model.MsgNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// populate joins rooms, and guests when userColumns is set, with one IN query
// each.
func (s *serviceImpl) populate(ctx context.Context, bookings []model.Booking, userColumns []string) ([]dto.BookingResponse, error) {
	res := make([]dto.BookingResponse, len(bookings))
	if len(bookings) == 0 {
		return res, nil
	}

	roomIDs := make([]string, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))

	for _, booking := range bookings {
		roomIDs = append(roomIDs, booking.RoomID)
		userIDs = append(userIDs, booking.UserID)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(unique(roomIDs), roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked rooms")

		return nil, fmt.Errorf("failed to get booked rooms: %w", err)
	}

	roomsByID := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		roomsByID[room.ID] = room
	}

	usersByID := map[string]userModel.User{}

	if len(userColumns) > 0 {
		users, err := s.userRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(unique(userIDs), userModel.FieldID, userModel.TableName), userColumns...)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking guests")

			return nil, fmt.Errorf("failed to get booking guests: %w", err)
		}

		for _, user := range users {
			usersByID[user.ID] = user
		}
	}

	for i, booking := range bookings {
		res[i].FromModel(booking)

		if room, ok := roomsByID[booking.RoomID]; ok {
			res[i].Room = roomResponse(room)
		}

		if user, ok := usersByID[booking.UserID]; ok {
			res[i].User = &userDto.ContactResponse{}
			res[i].User.FromModel(user)
		}
	}

	return res, nil
}

// contact loads the guest projection for a fresh booking. A miss leaves it empty.
func (s *serviceImpl) contact(ctx context.Context, userID string) *userDto.ContactResponse {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName), userModel.ContactColumns...)
	if err != nil || user.ID == constant.Empty {
		log.Warn().Err(err).Str("userID", userID).Msg("booking guest not found")

		return nil
	}

	res := &userDto.ContactResponse{}
	res.FromModel(user)

	return res
}

func roomResponse(room roomModel.Room) *roomDto.RoomResponse {
	res := &roomDto.RoomResponse{}
	res.FromModel(room)

	return res
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		res = append(res, id)
	}

	return res
}
