package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verateam/vera-bot/bot"
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/store"
)

type recordSink struct {
	batches [][]bot.Action
}

func (r *recordSink) Deliver(actions []bot.Action) {
	r.batches = append(r.batches, actions)
}

type staticAdmins []int64

func (s staticAdmins) AdminTargets() []int64 { return s }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.AutoMigrate())
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestReminder(t *testing.T) (*ReminderService, *store.Store, *recordSink) {
	st := newTestStore(t)
	sink := &recordSink{}
	svc := NewReminderService(st, sink, staticAdmins{999})
	return svc, st, sink
}

func TestSweepRemindsInsideWindowOnce(t *testing.T) {
	svc, st, sink := newTestReminder(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	guest := int64(42)
	b := &models.Booking{UserID: &guest, FullName: "Анна", DateTime: "01.09 13:00"}
	require.NoError(t, st.CreateBooking(b))

	svc.Sweep(now)
	require.Len(t, sink.batches, 1)

	actions := sink.batches[0]
	require.Len(t, actions, 2)
	assert.Equal(t, guest, actions[0].Target)
	require.NotNil(t, actions[0].Keyboard, "the guest gets confirm/cancel buttons")
	assert.Equal(t, int64(999), actions[1].Target)

	got, err := st.GetBooking(b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RemindedAt)
	assert.Equal(t, models.BookingPending, got.Status)

	// The booking is still inside the window a minute later, but the marker
	// stops a second reminder.
	svc.Sweep(now.Add(time.Minute))
	assert.Len(t, sink.batches, 1)
}

func TestSweepIgnoresBookingsOutsideWindow(t *testing.T) {
	svc, st, sink := newTestReminder(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	guest := int64(42)
	require.NoError(t, st.CreateBooking(&models.Booking{UserID: &guest, DateTime: "01.09 15:00"}))
	require.NoError(t, st.CreateBooking(&models.Booking{UserID: &guest, DateTime: "01.09 12:30"}))

	svc.Sweep(now)
	assert.Empty(t, sink.batches)
}

func TestSweepSkipsNonPending(t *testing.T) {
	svc, st, sink := newTestReminder(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	guest := int64(42)
	b := &models.Booking{UserID: &guest, DateTime: "01.09 13:00"}
	require.NoError(t, st.CreateBooking(b))
	require.NoError(t, st.ConfirmBooking(b.ID))

	svc.Sweep(now)
	assert.Empty(t, sink.batches)
}

func TestAutoConfirmOnlyWhenStillPending(t *testing.T) {
	svc, st, sink := newTestReminder(t)

	guest := int64(42)
	b := &models.Booking{UserID: &guest, FullName: "Анна", DateTime: "01.09 13:00"}
	require.NoError(t, st.CreateBooking(b))

	svc.autoConfirm(b.ID)
	require.Len(t, sink.batches, 1)
	got, err := st.GetBooking(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)

	// Running again is a no-op: no state change, no duplicate notice.
	svc.autoConfirm(b.ID)
	assert.Len(t, sink.batches, 1)
}

func TestAutoConfirmLeavesCancelledAlone(t *testing.T) {
	svc, st, sink := newTestReminder(t)

	guest := int64(42)
	b := &models.Booking{UserID: &guest, DateTime: "01.09 13:00"}
	require.NoError(t, st.CreateBooking(b))
	require.NoError(t, st.CancelBooking(b.ID))

	svc.autoConfirm(b.ID)
	assert.Empty(t, sink.batches)

	got, err := st.GetBooking(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
}
