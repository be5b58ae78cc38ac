package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verateam/vera-bot/models"
)

func TestCleanupRemovesOnlyPastDates(t *testing.T) {
	st := newTestStore(t)
	svc := NewCleanupService(st)
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.Local)

	require.NoError(t, st.CreateBooking(&models.Booking{FullName: "вчера", DateTime: "31.08 19:00"}))
	require.NoError(t, st.CreateBooking(&models.Booking{FullName: "сегодня утром", DateTime: "01.09 10:00"}))
	require.NoError(t, st.CreateBooking(&models.Booking{FullName: "завтра", DateTime: "02.09 19:00"}))
	require.NoError(t, st.CreateBooking(&models.Booking{FullName: "кривая", DateTime: "не дата"}))

	svc.Sweep(now)

	bookings, err := st.ListBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	for _, b := range bookings {
		assert.NotEqual(t, "вчера", b.FullName)
	}
}

func TestCleanupKeepsTodayEvenLate(t *testing.T) {
	st := newTestStore(t)
	svc := NewCleanupService(st)
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.Local)

	// Strictly before today means a booking earlier the same day survives
	// until the next day's run.
	require.NoError(t, st.CreateBooking(&models.Booking{FullName: "обед", DateTime: "01.09 12:00"}))
	svc.Sweep(now)

	bookings, err := st.ListBookings()
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	svc.Sweep(now.AddDate(0, 0, 1))
	bookings, err = st.ListBookings()
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
