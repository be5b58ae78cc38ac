package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verateam/vera-bot/models"
)

func (s *Store) AddPhoto(fileID, caption string, addedBy int64) error {
	return s.DB.Create(&models.Photo{FileID: fileID, Caption: caption, AddedBy: addedBy}).Error
}

func (s *Store) ListPhotos(limit int) ([]models.Photo, error) {
	var photos []models.Photo
	q := s.DB.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return photos, q.Find(&photos).Error
}

func (s *Store) GetPhoto(id uint) (*models.Photo, error) {
	var p models.Photo
	err := s.DB.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ReplacePhoto swaps the media handle, keeping caption and id.
func (s *Store) ReplacePhoto(id uint, fileID string) error {
	return s.DB.Model(&models.Photo{}).Where("id = ?", id).Update("file_id", fileID).Error
}

func (s *Store) DeletePhoto(id uint) error {
	return s.DB.Delete(&models.Photo{}, id).Error
}
