package services

import (
	"time"

	"github.com/verateam/vera-bot/bot"
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/store"
	"github.com/verateam/vera-bot/utils"
)

// Sink delivers outbound actions. The Telegram adapter implements it; tests
// substitute a recorder.
type Sink interface {
	Deliver(actions []bot.Action)
}

// AdminSource yields the identities that receive operational notifications.
type AdminSource interface {
	AdminTargets() []int64
}

// ReminderService sweeps pending bookings once a minute and sends the
// one-hour reminder for anything due in 59 to 61 minutes. A booking that is
// still pending ConfirmAfter later gets confirmed automatically. Sweeps run
// on one goroutine, so a slow sweep delays the next tick instead of
// overlapping it.
type ReminderService struct {
	Store        *store.Store
	Out          Sink
	Admins       AdminSource
	Interval     time.Duration
	ConfirmAfter time.Duration
	StopChan     chan bool

	now func() time.Time
}

func NewReminderService(st *store.Store, out Sink, admins AdminSource) *ReminderService {
	return &ReminderService{
		Store:        st,
		Out:          out,
		Admins:       admins,
		Interval:     time.Minute,
		ConfirmAfter: 30 * time.Minute,
		StopChan:     make(chan bool),
		now:          time.Now,
	}
}

func (s *ReminderService) Start() {
	ticker := time.NewTicker(s.Interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.Sweep(s.now())
			case <-s.StopChan:
				ticker.Stop()
				return
			}
		}
	}()
	utils.InfoLogger.Println("Reminder service started")
}

func (s *ReminderService) Stop() {
	s.StopChan <- true
}

// Sweep sends reminders for bookings due within the window around one hour
// from now. RemindedAt is the idempotency marker: once set, later sweeps
// skip the row even though it stays inside the window for a couple of ticks.
func (s *ReminderService) Sweep(now time.Time) {
	bookings, err := s.Store.FutureBookings(now)
	if err != nil {
		utils.ErrorLogger.Errorf("reminder sweep: %v", err)
		return
	}
	lo := now.Add(59 * time.Minute)
	hi := now.Add(61 * time.Minute)
	for _, b := range bookings {
		if b.Status != models.BookingPending || b.RemindedAt != nil {
			continue
		}
		dt, ok := b.EvalTime(now)
		if !ok || dt.Before(lo) || dt.After(hi) {
			continue
		}
		if err := s.Store.MarkReminded(b.ID, now); err != nil {
			utils.ErrorLogger.Errorf("mark reminded %d: %v", b.ID, err)
			continue
		}
		s.Out.Deliver(bot.BookingReminderActions(&b, s.Admins.AdminTargets()))
		utils.InfoLogger.Printf("reminder sent for booking %d (%s)", b.ID, b.DateTime)
		id := b.ID
		time.AfterFunc(s.ConfirmAfter, func() { s.autoConfirm(id) })
	}
}

func (s *ReminderService) autoConfirm(id uint) {
	changed, err := s.Store.ConfirmBookingIfPending(id)
	if err != nil {
		utils.ErrorLogger.Errorf("auto-confirm %d: %v", id, err)
		return
	}
	if !changed {
		return
	}
	booking, err := s.Store.GetBooking(id)
	if err != nil || booking == nil {
		return
	}
	s.Out.Deliver(bot.BookingAutoConfirmedActions(booking, s.Admins.AdminTargets()))
	utils.InfoLogger.Printf("booking %d auto-confirmed", id)
}
