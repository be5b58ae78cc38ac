package models

import "time"

// MenuItem.PhotoRef is either "file_id:<telegram file id>" or a plain URL.
type MenuItem struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:decimal(10,2);not null;default:0"`
	Category    string  `gorm:"type:varchar(128)"`
	PhotoRef    string  `gorm:"type:varchar(512);column:photo_url"`
	IsActive    bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const PhotoFileIDPrefix = "file_id:"

// PhotoFileID reports the Telegram file id when PhotoRef carries one.
func (m *MenuItem) PhotoFileID() (string, bool) {
	if len(m.PhotoRef) > len(PhotoFileIDPrefix) && m.PhotoRef[:len(PhotoFileIDPrefix)] == PhotoFileIDPrefix {
		return m.PhotoRef[len(PhotoFileIDPrefix):], true
	}
	return "", false
}
