package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/booking/model"
)

func date(value string) time.Time {
	t, _ := time.Parse(time.DateOnly, value)

	return t
}

func TestBooking_Overlaps(t *testing.T) {
	existing := model.Booking{CheckInDate: date("2025-06-01"), CheckOutDate: date("2025-06-03")}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{name: "starts on the existing check-out day", checkIn: "2025-06-03", checkOut: "2025-06-05", want: true},
		{name: "ends on the existing check-in day", checkIn: "2025-05-28", checkOut: "2025-06-01", want: true},
		{name: "inside the existing stay", checkIn: "2025-06-02", checkOut: "2025-06-02", want: true},
		{name: "covers the existing stay", checkIn: "2025-05-01", checkOut: "2025-07-01", want: true},
		{name: "the day after", checkIn: "2025-06-04", checkOut: "2025-06-06", want: false},
		{name: "the week before", checkIn: "2025-05-20", checkOut: "2025-05-31", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

func TestBooking_HasValidDates(t *testing.T) {
	assert.True(t, (&model.Booking{CheckInDate: date("2025-06-01"), CheckOutDate: date("2025-06-02")}).HasValidDates())
	assert.False(t, (&model.Booking{CheckInDate: date("2025-06-01"), CheckOutDate: date("2025-06-01")}).HasValidDates())
	assert.False(t, (&model.Booking{CheckInDate: date("2025-06-02"), CheckOutDate: date("2025-06-01")}).HasValidDates())
}

func TestStatus(t *testing.T) {
	assert.True(t, model.StatusPending.IsLive())
	assert.True(t, model.StatusConfirmed.IsLive())
	assert.False(t, model.StatusCancelled.IsLive())
	assert.False(t, model.StatusCompleted.IsLive())

	assert.True(t, model.StatusCancelled.CanTransitionTo(model.StatusPending))
	assert.True(t, model.StatusCompleted.CanTransitionTo(model.StatusConfirmed))
	assert.False(t, model.Status("archived").IsValid())
	assert.False(t, model.Status("archived").CanTransitionTo(model.StatusPending))

	assert.True(t, model.PaymentStatusRefunded.IsValid())
	assert.False(t, model.PaymentStatus("unpaid").IsValid())
}

func TestOverlapFilter(t *testing.T) {
	t.Run("new booking", func(t *testing.T) {
		filter := model.OverlapFilter("room-1", date("2025-06-03"), date("2025-06-05"), "")

		where, args := filter.GetWhereClause()

		assert.Equal(t,
			"(bookings.room_id = :room_id AND bookings.status IN (:status_0, :status_1)  AND "+
				"bookings.check_in_date <= :requested_check_out AND bookings.check_out_date >= :requested_check_in)",
			where)
		assert.Equal(t, "room-1", args["room_id"])
		assert.Equal(t, "pending", args["status_0"])
		assert.Equal(t, "confirmed", args["status_1"])
		assert.Equal(t, date("2025-06-05"), args["requested_check_out"])
		assert.Equal(t, date("2025-06-03"), args["requested_check_in"])
	})

	t.Run("edited booking is excluded", func(t *testing.T) {
		filter := model.OverlapFilter("room-1", date("2025-06-03"), date("2025-06-05"), "booking-1")

		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "AND bookings.id != :id)")
		assert.Equal(t, "booking-1", args["id"])
	})
}

func TestRevenueFilter(t *testing.T) {
	filter := model.RevenueFilter()

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.status = :status AND bookings.payment_status = :payment_status)", where)
	assert.Equal(t, "completed", args["status"])
	assert.Equal(t, "paid", args["payment_status"])
}
