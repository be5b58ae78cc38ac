package services

import (
	"time"

	"github.com/verateam/vera-bot/store"
	"github.com/verateam/vera-bot/utils"
)

// CleanupService drops bookings dated strictly before today, once a day at
// 23:59 local time. Rows whose datetime cannot be parsed are kept; deleting
// on a guess is worse than keeping a stale row.
type CleanupService struct {
	Store    *store.Store
	StopChan chan bool

	now func() time.Time
}

func NewCleanupService(st *store.Store) *CleanupService {
	return &CleanupService{Store: st, StopChan: make(chan bool), now: time.Now}
}

func (c *CleanupService) Start() {
	go func() {
		for {
			now := c.now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
			if !next.After(now) {
				next = next.AddDate(0, 0, 1)
			}
			timer := time.NewTimer(next.Sub(now))
			select {
			case <-timer.C:
				c.Sweep(c.now())
			case <-c.StopChan:
				timer.Stop()
				return
			}
		}
	}()
	utils.InfoLogger.Println("Cleanup service started")
}

func (c *CleanupService) Stop() {
	c.StopChan <- true
}

// Sweep removes every booking whose evaluated date is before today.
func (c *CleanupService) Sweep(now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bookings, err := c.Store.ListBookings()
	if err != nil {
		utils.ErrorLogger.Errorf("cleanup sweep: %v", err)
		return
	}
	removed := 0
	for _, b := range bookings {
		dt, ok := b.EvalTime(now)
		if !ok {
			continue
		}
		if dt.Before(today) {
			if err := c.Store.DeleteBooking(b.ID); err != nil {
				utils.ErrorLogger.Errorf("cleanup delete %d: %v", b.ID, err)
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		utils.InfoLogger.Printf("cleanup removed %d past bookings", removed)
	}
}
