package models

import "time"

// Photo is a gallery image. FileID is the opaque Telegram media handle.
type Photo struct {
	ID        uint   `gorm:"primaryKey"`
	FileID    string `gorm:"type:varchar(255);not null;column:file_id"`
	Caption   string `gorm:"type:text"`
	AddedBy   int64  `gorm:"column:added_by"`
	CreatedAt time.Time
}
