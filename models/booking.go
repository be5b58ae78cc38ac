package models

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

const (
	ConsentYes = "Да"
	ConsentNo  = "Нет"
)

// Booking keeps the requested time exactly as the guest typed it; parsing
// happens at evaluation time (see DateTimeLayouts / EvalTime).
type Booking struct {
	ID       uint          `gorm:"primaryKey"`
	UserID   *int64        `gorm:"index"`
	FullName string        `gorm:"type:varchar(255);column:fullname"`
	Phone    string        `gorm:"type:varchar(64)"`
	DateTime string        `gorm:"type:varchar(64);column:datetime"`
	Source   string        `gorm:"type:varchar(255)"`
	Notes    string        `gorm:"type:text"`
	Status   BookingStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Consent  string        `gorm:"type:varchar(10);not null;default:'Нет'"`
	// RemindedAt marks that the one-hour reminder went out, so the sweep
	// never sends it twice. Status is not reused for this.
	RemindedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DateTimeLayouts are the accepted spellings of a booking time. The first
// one carries no year.
var DateTimeLayouts = []string{
	"02.01 15:04",
	"2006-01-02 15:04",
	"02.01.2006 15:04",
}

// EvalTime parses the stored text against now. A year-less value gets now's
// year substituted, so "28.08 18:30" always means the stored month/day in
// the current year at the moment of evaluation, whatever year it was typed.
func (b *Booking) EvalTime(now time.Time) (time.Time, bool) {
	return EvalBookingTime(b.DateTime, now)
}

func EvalBookingTime(text string, now time.Time) (time.Time, bool) {
	for _, layout := range DateTimeLayouts {
		dt, err := time.ParseInLocation(layout, text, now.Location())
		if err != nil {
			continue
		}
		if dt.Year() == 0 {
			dt = dt.AddDate(now.Year(), 0, 0)
		}
		return dt, true
	}
	return time.Time{}, false
}
