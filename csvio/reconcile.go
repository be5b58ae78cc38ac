package csvio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/store"
	"github.com/verateam/vera-bot/utils"
)

// Summary is what a reconciliation run reports back: exact counts, never a
// silent total failure because one row was bad.
type Summary struct {
	Inserted int
	Updated  int
	Skipped  int
}

func (s Summary) String() string {
	return fmt.Sprintf("добавлено %d, обновлено %d, пропущено %d", s.Inserted, s.Updated, s.Skipped)
}

// Reconcile merges parsed rows into the entity table for kind. The table's
// detected schema must agree with the requested kind; that mismatch is a
// batch failure. Individual bad rows are skipped and counted.
func Reconcile(st *store.Store, kind Kind, table *Table) (Summary, error) {
	var summary Summary
	if table.Kind != kind {
		return summary, fmt.Errorf("csv: файл содержит схему %q, ожидалась %q", table.Kind, kind)
	}

	switch kind {
	case KindBookings:
		for _, rowMap := range table.Rows {
			if err := st.CreateBooking(bookingFromRow(rowMap)); err != nil {
				utils.ErrorLogger.Errorf("import booking row: %v", err)
				summary.Skipped++
				continue
			}
			summary.Inserted++
		}
	case KindMenu:
		for _, rowMap := range table.Rows {
			item := menuItemFromRow(rowMap)
			if item.Title == "" {
				summary.Skipped++
				continue
			}
			if err := st.CreateMenuItem(item); err != nil {
				utils.ErrorLogger.Errorf("import menu row: %v", err)
				summary.Skipped++
				continue
			}
			summary.Inserted++
		}
	case KindStaff:
		for _, rowMap := range table.Rows {
			user, ok := userFromRow(rowMap)
			if !ok {
				summary.Skipped++
				continue
			}
			created, err := st.UpsertUser(user)
			if err != nil {
				utils.ErrorLogger.Errorf("import user row: %v", err)
				summary.Skipped++
				continue
			}
			if created {
				summary.Inserted++
			} else {
				summary.Updated++
			}
		}
	default:
		return summary, fmt.Errorf("csv: неизвестный тип импорта %q", kind)
	}
	return summary, nil
}

// bookingFromRow degrades malformed values to their zero forms instead of
// dropping the row: bookings have no natural key, every row is an insert.
func bookingFromRow(rowMap map[string]string) *models.Booking {
	b := &models.Booking{
		FullName: rowMap["fullname"],
		Phone:    rowMap["phone"],
		DateTime: rowMap["datetime"],
		Source:   rowMap["source"],
		Notes:    rowMap["notes"],
		Status:   models.BookingPending,
		Consent:  models.ConsentNo,
	}
	if id, err := strconv.ParseInt(rowMap["user_id"], 10, 64); err == nil {
		b.UserID = &id
	}
	switch models.BookingStatus(rowMap["status"]) {
	case models.BookingConfirmed:
		b.Status = models.BookingConfirmed
	case models.BookingCancelled:
		b.Status = models.BookingCancelled
	}
	if rowMap["consent"] == models.ConsentYes {
		b.Consent = models.ConsentYes
	}
	return b
}

func menuItemFromRow(rowMap map[string]string) *models.MenuItem {
	price := 0.0
	if raw := strings.ReplaceAll(rowMap["price"], ",", "."); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 {
			price = parsed
		}
	}
	active := true
	switch strings.ToLower(rowMap["is_active"]) {
	case "0", "no", "false", "нет":
		active = false
	}
	return &models.MenuItem{
		Title:       rowMap["title"],
		Description: rowMap["description"],
		Price:       price,
		Category:    rowMap["category"],
		PhotoRef:    rowMap["photo_url"],
		IsActive:    active,
	}
}

// userFromRow: the Telegram ID is the natural key; a row without a numeric
// one cannot be reconciled at all.
func userFromRow(rowMap map[string]string) (*models.User, bool) {
	id, err := strconv.ParseInt(rowMap["user_id"], 10, 64)
	if err != nil {
		return nil, false
	}
	role := models.RoleStaff
	if raw := rowMap["role"]; raw != "" {
		role = models.ParseRole(raw)
	}
	return &models.User{
		ID:       id,
		Role:     role,
		FullName: rowMap["fullname"],
		Phone:    rowMap["phone"],
		Username: strings.TrimPrefix(rowMap["username"], "@"),
		Passport: rowMap["passport"],
	}, true
}
