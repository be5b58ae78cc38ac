package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/verateam/vera-bot/store"
)

// Export dumps one entity table as semicolon-delimited UTF-8 with the same
// header the import side understands, plus a suggested filename.
func Export(st *store.Store, kind Kind) (data []byte, filename string, err error) {
	switch kind {
	case KindBookings:
		bookings, err := st.ListBookings()
		if err != nil {
			return nil, "", err
		}
		records := make([][]string, 0, len(bookings))
		for _, b := range bookings {
			userID := ""
			if b.UserID != nil {
				userID = strconv.FormatInt(*b.UserID, 10)
			}
			records = append(records, []string{
				strconv.FormatUint(uint64(b.ID), 10), userID, b.FullName, b.Phone,
				b.DateTime, b.Source, b.Notes, string(b.Status), b.Consent,
			})
		}
		data, err := write([]string{"id", "user_id", "fullname", "phone", "datetime", "source", "notes", "status", "consent"}, records)
		return data, "bookings_export.csv", err

	case KindStaff:
		users, err := st.ListUsers(0)
		if err != nil {
			return nil, "", err
		}
		records := make([][]string, 0, len(users))
		for _, u := range users {
			records = append(records, []string{
				strconv.FormatInt(u.ID, 10), strconv.Itoa(int(u.Role)),
				u.FullName, u.Phone, u.Username, u.Passport,
			})
		}
		data, err := write([]string{"user_id", "role", "fullname", "phone", "username", "passport"}, records)
		return data, "staff_export.csv", err

	case KindMenu:
		items, err := st.ListMenuItems()
		if err != nil {
			return nil, "", err
		}
		records := make([][]string, 0, len(items))
		for _, item := range items {
			active := "1"
			if !item.IsActive {
				active = "0"
			}
			records = append(records, []string{
				strconv.FormatUint(uint64(item.ID), 10), item.Title, item.Description,
				strconv.FormatFloat(item.Price, 'f', 2, 64), item.Category, item.PhotoRef, active,
			})
		}
		data, err := write([]string{"id", "title", "description", "price", "category", "photo_url", "is_active"}, records)
		return data, "menu_export.csv", err
	}
	return nil, "", fmt.Errorf("csv: неизвестный тип экспорта %q", kind)
}

func write(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
