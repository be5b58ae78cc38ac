package models

import "time"

type ListKind string

const (
	ListStop ListKind = "stop"
	ListTogo ListKind = "togo"
)

// KitchenEntry is a line on one of the kitchen lists. Entries are added and
// removed, never edited in place.
type KitchenEntry struct {
	ID        uint     `gorm:"primaryKey"`
	Kind      ListKind `gorm:"type:varchar(10);not null;index"`
	Title     string   `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}
