package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	postgresMocks "hotel/infras/postgres/mocks"
	prometheusMocks "hotel/infras/prometheus/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	notificationMocks "hotel/internal/domains/notification/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

const (
	roomID    = "0b7c4f5e-93a1-4d7e-9c55-1f0e2a3b4c5d"
	guestID   = "guest-1"
	bookingID = "booking-1"
)

type fixture struct {
	repo       *bookingMocks.MockBooking
	roomRepo   *roomMocks.MockRoom
	userRepo   *userMocks.MockUser
	transactor *postgresMocks.MockTransactor
	notifier   *notificationMocks.MockNotifier
	metrics    *prometheusMocks.MockMetrics
	svc        service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		userRepo:   userMocks.NewMockUser(ctrl),
		transactor: postgresMocks.NewMockTransactor(ctrl),
		notifier:   notificationMocks.NewMockNotifier(ctrl),
		metrics:    prometheusMocks.NewMockMetrics(ctrl),
	}

	f.svc = service.New(f.repo, f.roomRepo, f.userRepo, f.transactor, f.notifier, f.metrics, mocks.NewOtel())

	f.transactor.EXPECT().
		WithTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) error {
			assert.Nil(t, opts)

			return fn(nil)
		}).
		AnyTimes()
	f.notifier.EXPECT().BookingCreated(gomock.Any(), gomock.Any()).AnyTimes()
	f.notifier.EXPECT().BookingStatusChanged(gomock.Any(), gomock.Any()).AnyTimes()
	f.metrics.EXPECT().ObserveBooking(gomock.Any()).AnyTimes()

	return f
}

func guestContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, guestID)
}

func availableRoom() roomModel.Room {
	return roomModel.Room{ID: roomID, RoomNumber: "101", RoomType: roomModel.RoomTypeSingle, Price: 99, Capacity: 1, IsAvailable: true}
}

func guest() userModel.User {
	return userModel.User{ID: guestID, FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "555-0100"}
}

func day(value string) time.Time {
	t, _ := timezone.ParseDate(value)

	return t
}

func createRequest(checkIn, checkOut string) dto.CreateBookingRequest {
	price := 198.0

	return dto.CreateBookingRequest{
		RoomID:         roomID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 1,
		TotalPrice:     &price,
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantKind  failure.Kind
		wantMsg   string
	}{
		{
			name: "successful booking",
			req:  createRequest("2025-06-01", "2025-06-03"),
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
						assert.Equal(t, guestID, booking.UserID)

						return nil
					})
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any(), userModel.ContactColumns).Return(guest(), nil)
			},
		},
		{
			name: "room not found",
			req:  createRequest("2025-06-01", "2025-06-03"),
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantKind: failure.KindNotFound,
			wantMsg:  "Room not found",
		},
		{
			name: "room not available is checked before the dates",
			req:  createRequest("2025-06-05", "2025-06-01"),
			setupMock: func(f fixture) {
				room := availableRoom()
				room.IsAvailable = false

				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantKind: failure.KindInvalidState,
			wantMsg:  "Room is not available",
		},
		{
			name: "overlapping live booking",
			req:  createRequest("2025-06-03", "2025-06-05"),
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.repo.EXPECT().
					ExistTx(gomock.Any(), gomock.Any(), model.OverlapFilter(roomID, day("2025-06-03"), day("2025-06-05"), constant.Empty)).
					Return(true, nil)
			},
			wantKind: failure.KindConflict,
			wantMsg:  "Room is already booked for these dates",
		},
		{
			name: "check-out on the check-in day",
			req:  createRequest("2025-06-01", "2025-06-01"),
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantKind: failure.KindValidation,
			wantMsg:  "Check-out date must be after check-in date",
		},
		{
			name: "exclusion constraint violation reads as a conflict",
			req:  createRequest("2025-06-01", "2025-06-03"),
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.Conflict("conflicting key value violates exclusion constraint"))
			},
			wantKind: failure.KindConflict,
			wantMsg:  "Room is already booked for these dates",
		},
		{
			name:      "malformed date",
			req:       createRequest("first of june", "2025-06-03"),
			setupMock: func(f fixture) {},
			wantKind:  failure.KindValidation,
		},
		{
			name: "repository error",
			req:  createRequest("2025-06-01", "2025-06-03"),
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, errors.New("connection reset"))
			},
			wantKind: failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(guestContext(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "pending", res.Status)
			assert.Equal(t, "pending", res.PaymentStatus)
			require.NotNil(t, res.Room)
			assert.Equal(t, "101", res.Room.RoomNumber)
			require.NotNil(t, res.User)
			assert.Equal(t, "john@example.com", res.User.Email)
		})
	}
}

func TestBookingService_CreateAsSystemIdentity(t *testing.T) {
	f := newFixture(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, constant.ContextSystem)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	_, err := f.svc.Create(ctx, createRequest("2025-06-01", "2025-06-03"))

	require.Error(t, err)
	assert.Equal(t, failure.KindForbidden, failure.GetKind(err))
	assert.Equal(t, model.MsgSystemIdentity, err.Error())
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Cancel(guestContext(), bookingID)

		assert.True(t, failure.Is(err, failure.KindNotFound))
		assert.Equal(t, "Booking not found", err.Error())
	})

	for _, status := range []model.Status{model.StatusPending, model.StatusCompleted, model.StatusCancelled} {
		t.Run("cancels a "+string(status)+" booking in place", func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: bookingID, Status: status}, nil)
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
					assert.Equal(t, guestID, fields[constant.FieldModifiedBy])

					return nil
				})

			assert.NoError(t, f.svc.Cancel(guestContext(), bookingID))
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	current := model.Booking{
		ID:           bookingID,
		UserID:       guestID,
		RoomID:       roomID,
		CheckInDate:  day("2025-06-01"),
		CheckOutDate: day("2025-06-03"),
		Status:       model.StatusPending,
	}

	t.Run("patched dates out of order", func(t *testing.T) {
		f := newFixture(t)
		checkOut := "2025-05-30"

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{CheckOutDate: &checkOut}, bookingID)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		assert.Equal(t, "Check-out date must be after check-in date", err.Error())
	})

	t.Run("moved onto another live booking", func(t *testing.T) {
		f := newFixture(t)
		checkIn := "2025-06-02"

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			ExistTx(gomock.Any(), gomock.Any(), model.OverlapFilter(roomID, day("2025-06-02"), day("2025-06-03"), bookingID)).
			Return(true, nil)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{CheckInDate: &checkIn}, bookingID)

		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("guests only skip the overlap check", func(t *testing.T) {
		f := newFixture(t)
		guests := 2

		updated := current
		updated.NumberOfGuests = guests

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, guests, fields[model.FieldNumberOfGuests])
				assert.NotContains(t, fields, model.FieldStatus)

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
		f.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{availableRoom()}, nil)
		f.userRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]userModel.User{guest()}, nil)

		res, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{NumberOfGuests: &guests}, bookingID)

		require.NoError(t, err)
		assert.Equal(t, guests, res.NumberOfGuests)
		assert.NotNil(t, res.Room)
		assert.NotNil(t, res.User)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{}, bookingID)

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	cancelled := model.Booking{
		ID:           bookingID,
		UserID:       guestID,
		RoomID:       roomID,
		CheckInDate:  day("2025-06-01"),
		CheckOutDate: day("2025-06-03"),
		Status:       model.StatusCancelled,
	}

	t.Run("reviving a cancelled booking re-checks overlaps", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.UpdateStatus(guestContext(), dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed}, bookingID)

		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
		assert.Equal(t, "Room is already booked for these dates", err.Error())
	})

	t.Run("completing skips the overlap check", func(t *testing.T) {
		f := newFixture(t)

		completed := cancelled
		completed.Status = model.StatusCompleted

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
		f.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{availableRoom()}, nil)
		f.userRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]userModel.User{guest()}, nil)

		res, err := f.svc.UpdateStatus(guestContext(), dto.UpdateBookingStatusRequest{Status: model.StatusCompleted}, bookingID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "completed", res.Status)
	})
}

func TestBookingService_GetByUser(t *testing.T) {
	f := newFixture(t)

	bookings := []model.Booking{
		{ID: "b2", UserID: guestID, RoomID: roomID},
		{ID: "b1", UserID: guestID, RoomID: roomID},
	}

	f.repo.EXPECT().GetAll(gomock.Any(), gDto.NewestFirst(), gomock.Any()).Return(bookings, nil)
	f.roomRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
			_, args := filter.GetWhereClause()
			assert.Len(t, args, 1, "room ids are de-duplicated")

			return []roomModel.Room{availableRoom()}, nil
		})

	res, err := f.svc.GetByUser(guestContext(), guestID)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "b2", res[0].ID)
	assert.NotNil(t, res[0].Room)
	assert.Nil(t, res[0].User, "guest listings only join rooms")
}

func TestBookingService_GetByUserSystemIdentity(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.GetByUser(context.Background(), constant.ContextSystem)

	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestBookingService_DashboardStats(t *testing.T) {
	f := newFixture(t)

	counts := map[string]int{"": 7, "pending": 2, "confirmed": 3, "cancelled": 1, "completed": 1}

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			status, _ := args[model.FieldStatus].(string)

			return counts[status], nil
		}).
		Times(5)
	f.roomRepo.EXPECT().Count(gomock.Any(), gDto.And()).Return(6, nil)
	f.roomRepo.EXPECT().Count(gomock.Any(), gomock.Not(gDto.And())).Return(5, nil)
	f.repo.EXPECT().Sum(gomock.Any(), model.FieldTotalPrice, model.RevenueFilter()).Return(597.0, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gDto.And()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, 5, params.Limit)
			assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)

			return []model.Booking{}, nil
		})

	res, err := f.svc.DashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalBookings)
	assert.Equal(t, 2, res.PendingBookings)
	assert.Equal(t, 3, res.ConfirmedBookings)
	assert.Equal(t, 6, res.TotalRooms)
	assert.Equal(t, 5, res.AvailableRooms)
	assert.InDelta(t, 597.0, res.TotalRevenue, 0.001)
	assert.Empty(t, res.RecentBookings)
}

func TestBookingService_DashboardRecentBookingsUseSummaryColumns(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil).Times(5)
	f.roomRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil).Times(2)
	f.repo.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(198.0, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gDto.And()).
		Return([]model.Booking{{ID: bookingID, UserID: guestID, RoomID: roomID, Status: model.StatusPending}}, nil)
	f.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{availableRoom()}, nil)
	f.userRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), userModel.SummaryColumns).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, columns ...string) ([]userModel.User, error) {
			assert.NotContains(t, columns, userModel.FieldPhone)

			user := guest()
			user.Phone = constant.Empty

			return []userModel.User{user}, nil
		})

	res, err := f.svc.DashboardStats(context.Background())

	require.NoError(t, err)
	require.Len(t, res.RecentBookings, 1)
	require.NotNil(t, res.RecentBookings[0].User)
	assert.Equal(t, "john@example.com", res.RecentBookings[0].User.Email)
	assert.Empty(t, res.RecentBookings[0].User.Phone)
}
