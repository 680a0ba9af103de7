package dto

import (
	"fmt"
	"net/http"
	"time"

	"hotel/internal/domains/booking/model"
	roomDto "hotel/internal/domains/room/model/dto"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/sanitizer"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID          string   `json:"room"            validate:"required,uuid"`
	CheckInDate     string   `json:"checkInDate"     validate:"required"`
	CheckOutDate    string   `json:"checkOutDate"    validate:"required"`
	NumberOfGuests  int      `json:"numberOfGuests"  validate:"required,min=1"`
	TotalPrice      *float64 `json:"totalPrice"      validate:"required,min=0"`
	SpecialRequests string   `json:"specialRequests" validate:"max=1000"`
}

// ToModel parses the stay dates; their order is checked by the booking flow.
func (c *CreateBookingRequest) ToModel(userID string) (model.Booking, error) {
	checkIn, err := timezone.ParseDate(c.CheckInDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("checkInDate: %w", err)
	}

	checkOut, err := timezone.ParseDate(c.CheckOutDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("checkOutDate: %w", err)
	}

	return model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		RoomID:          c.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  c.NumberOfGuests,
		TotalPrice:      *c.TotalPrice,
		SpecialRequests: sanitizer.Text(c.SpecialRequests),
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		Metadata:        gModel.NewMetadata(userID, timezone.Now()),
	}, nil
}

type UpdateBookingRequest struct {
	CheckInDate     *string              `db:"-"                json:"checkInDate"`
	CheckOutDate    *string              `db:"-"                json:"checkOutDate"`
	NumberOfGuests  *int                 `db:"number_of_guests" json:"numberOfGuests"  validate:"omitempty,min=1"`
	TotalPrice      *float64             `db:"total_price"      json:"totalPrice"      validate:"omitempty,min=0"`
	SpecialRequests *string              `db:"special_requests" json:"specialRequests" validate:"omitempty,max=1000"`
	Status          *model.Status        `db:"status"           json:"status"          validate:"omitempty,enum"`
	PaymentStatus   *model.PaymentStatus `db:"payment_status"   json:"paymentStatus"   validate:"omitempty,enum"`
}

// Apply merges the patch into current and returns the resulting booking.
func (u *UpdateBookingRequest) Apply(current model.Booking) (model.Booking, error) {
	merged := current

	if u.CheckInDate != nil {
		checkIn, err := timezone.ParseDate(*u.CheckInDate)
		if err != nil {
			return merged, fmt.Errorf("checkInDate: %w", err)
		}

		merged.CheckInDate = checkIn
	}

	if u.CheckOutDate != nil {
		checkOut, err := timezone.ParseDate(*u.CheckOutDate)
		if err != nil {
			return merged, fmt.Errorf("checkOutDate: %w", err)
		}

		merged.CheckOutDate = checkOut
	}

	if u.NumberOfGuests != nil {
		merged.NumberOfGuests = *u.NumberOfGuests
	}

	if u.TotalPrice != nil {
		merged.TotalPrice = *u.TotalPrice
	}

	if u.SpecialRequests != nil {
		cleaned := sanitizer.Text(*u.SpecialRequests)
		u.SpecialRequests = &cleaned
		merged.SpecialRequests = cleaned
	}

	if u.Status != nil {
		merged.Status = *u.Status
	}

	if u.PaymentStatus != nil {
		merged.PaymentStatus = *u.PaymentStatus
	}

	return merged, nil
}

type UpdateBookingStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

// BookingFilter holds the admin listing query string.
type BookingFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

func (f *BookingFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Status = query.Get(constant.QueryParamStatus)

	for name, target := range map[string]**time.Time{
		constant.QueryParamStartDate: &f.StartDate,
		constant.QueryParamEndDate:   &f.EndDate,
	} {
		value := query.Get(name)
		if value == constant.Empty {
			continue
		}

		date, err := timezone.ParseDate(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}

		*target = &date
	}

	return nil
}

// ToFilterGroup bounds the check-in date by the requested window.
func (f *BookingFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.Status != constant.Empty {
		group.Add(gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.StartDate != nil {
		group.Add(gDto.Filter{Field: model.FieldCheckInDate, ArgName: "start_date", Value: *f.StartDate, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.EndDate != nil {
		group.Add(gDto.Filter{Field: model.FieldCheckInDate, ArgName: "end_date", Value: *f.EndDate, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	return group
}

// UserBookingsFilter selects every booking placed by userID.
func UserBookingsFilter(userID string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

type BookingResponse struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"userId"`
	RoomID          string                   `json:"roomId"`
	Room            *roomDto.RoomResponse    `json:"room,omitempty"`
	User            *userDto.ContactResponse `json:"user,omitempty"`
	CheckInDate     string                   `json:"checkInDate"`
	CheckOutDate    string                   `json:"checkOutDate"`
	NumberOfGuests  int                      `json:"numberOfGuests"`
	TotalPrice      float64                  `json:"totalPrice"`
	SpecialRequests string                   `json:"specialRequests"`
	Status          string                   `json:"status"`
	PaymentStatus   string                   `json:"paymentStatus"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.CheckInDate = timezone.Format(model.CheckInDate, constant.DateFormat)
	r.CheckOutDate = timezone.Format(model.CheckOutDate, constant.DateFormat)
	r.NumberOfGuests = model.NumberOfGuests
	r.TotalPrice = model.TotalPrice
	r.SpecialRequests = model.SpecialRequests
	r.Status = string(model.Status)
	r.PaymentStatus = string(model.PaymentStatus)
	r.Metadata.FromModel(model.Metadata)
}

type DashboardStatsResponse struct {
	TotalBookings     int               `json:"totalBookings"`
	PendingBookings   int               `json:"pendingBookings"`
	ConfirmedBookings int               `json:"confirmedBookings"`
	CancelledBookings int               `json:"cancelledBookings"`
	CompletedBookings int               `json:"completedBookings"`
	TotalRooms        int               `json:"totalRooms"`
	AvailableRooms    int               `json:"availableRooms"`
	TotalRevenue      float64           `json:"totalRevenue"`
	RecentBookings    []BookingResponse `json:"recentBookings"`
}
