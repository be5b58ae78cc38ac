package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/verateam/vera-bot/models"
)

func (s *Store) CreateBooking(b *models.Booking) error {
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	if b.Consent == "" {
		b.Consent = models.ConsentNo
	}
	return s.DB.Create(b).Error
}

func (s *Store) GetBooking(id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	return bookings, s.DB.Order("id DESC").Find(&bookings).Error
}

// FutureBookings returns rows whose evaluated time is not yet past.
// Rows that parse with none of the accepted layouts are left out.
func (s *Store) FutureBookings(now time.Time) ([]models.Booking, error) {
	all, err := s.ListBookings()
	if err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, b := range all {
		dt, ok := b.EvalTime(now)
		if !ok {
			continue
		}
		if !dt.Before(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

// ConfirmBooking moves pending to confirmed. Any other starting status is
// left alone: the transition table has no other edge into confirmed.
func (s *Store) ConfirmBooking(id uint) error {
	_, err := s.ConfirmBookingIfPending(id)
	return err
}

// ConfirmBookingIfPending reports whether the transition actually happened,
// so an automatic confirmation can tell a no-op from a real state change.
func (s *Store) ConfirmBookingIfPending(id uint) (bool, error) {
	tx := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Update("status", models.BookingConfirmed)
	return tx.RowsAffected > 0, tx.Error
}

func (s *Store) CancelBooking(id uint) error {
	return s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Update("status", models.BookingCancelled).Error
}

func (s *Store) MarkReminded(id uint, at time.Time) error {
	return s.DB.Model(&models.Booking{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}

func (s *Store) DeleteBooking(id uint) error {
	return s.DB.Delete(&models.Booking{}, id).Error
}
