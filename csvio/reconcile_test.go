package csvio

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/store"
)

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

func TestReconcileKindMismatchFailsBatch(t *testing.T) {
	st := newTestStore(t)
	table := &Table{Kind: KindMenu}

	_, err := Reconcile(st, KindBookings, table)
	assert.Error(t, err)
}

func TestReconcileMenuSkipsBadRowsAndCounts(t *testing.T) {
	st := newTestStore(t)
	table := &Table{Kind: KindMenu, Rows: []map[string]string{
		{"title": "Борщ", "price": "290,50", "category": "Еда", "is_active": "1"},
		{"title": "", "price": "100", "category": "Еда"},
		{"title": "Морс", "price": "не цена", "category": "Напитки", "is_active": "нет"},
	}}

	summary, err := Reconcile(st, KindMenu, table)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)

	items, err := st.ListMenuItems()
	require.NoError(t, err)
	require.Len(t, items, 2)

	byTitle := map[string]models.MenuItem{}
	for _, item := range items {
		byTitle[item.Title] = item
	}
	assert.Equal(t, 290.50, byTitle["Борщ"].Price)
	// A malformed price degrades to zero instead of dropping the row.
	assert.Equal(t, 0.0, byTitle["Морс"].Price)
	assert.False(t, byTitle["Морс"].IsActive)
}

func TestReconcileStaffUpsertsByID(t *testing.T) {
	st := newTestStore(t)
	_, err := st.UpsertUser(&models.User{ID: 123, Role: models.RoleStaff, FullName: "Старое Имя"})
	require.NoError(t, err)

	table := &Table{Kind: KindStaff, Rows: []map[string]string{
		{"user_id": "123", "role": "admin", "fullname": "Новое Имя", "username": "@ivan"},
		{"user_id": "456", "fullname": "Второй"},
		{"user_id": "не число", "fullname": "Мимо"},
	}}

	summary, err := Reconcile(st, KindStaff, table)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)

	updated, err := st.GetUser(123)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Новое Имя", updated.FullName)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, "ivan", updated.Username, "the @ prefix is stripped")

	// An empty role column defaults the imported row to staff.
	second, err := st.GetUser(456)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, models.RoleStaff, second.Role)

	users, err := st.ListUsers(0)
	require.NoError(t, err)
	assert.Len(t, users, 2, "upsert must not duplicate user 123")
}

func TestReconcileBookingsInsertsEveryRow(t *testing.T) {
	st := newTestStore(t)
	table := &Table{Kind: KindBookings, Rows: []map[string]string{
		{"fullname": "Анна", "phone": "+7900", "datetime": "28.08 15:30", "status": "confirmed", "consent": "Да", "user_id": "42"},
		{"fullname": "Анна", "phone": "+7900", "datetime": "28.08 15:30", "status": "выдумка", "user_id": "мимо"},
	}}

	summary, err := Reconcile(st, KindBookings, table)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted, "bookings have no natural key, duplicates are inserts")

	bookings, err := st.ListBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	// id DESC: the second imported row comes first.
	assert.Equal(t, models.BookingPending, bookings[0].Status, "unknown status normalizes to pending")
	assert.Nil(t, bookings[0].UserID)
	assert.Equal(t, models.BookingConfirmed, bookings[1].Status)
	require.NotNil(t, bookings[1].UserID)
	assert.Equal(t, int64(42), *bookings[1].UserID)
}

func TestExportRoundTripsHeader(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.CreateMenuItem(&models.MenuItem{Title: "Борщ", Price: 290.5, Category: "Еда", IsActive: true}))

	data, filename, err := Export(st, KindMenu)
	require.NoError(t, err)
	assert.Equal(t, "menu_export.csv", filename)

	table, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, KindMenu, table.Kind, "exported files must classify back to the same schema")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "290.50", table.Rows[0]["price"])
}
