package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verateam/vera-bot/models"
)

func (s *Store) CreateMenuItem(item *models.MenuItem) error {
	return s.DB.Create(item).Error
}

func (s *Store) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	return items, s.DB.Order("id DESC").Find(&items).Error
}

// ActiveMenuByCategory is the guest view: active items in one category,
// alphabetical.
func (s *Store) ActiveMenuByCategory(category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.DB.Where("is_active = ? AND category = ?", true, category).
		Order("title").Find(&items).Error
	return items, err
}

func (s *Store) UpdateMenuItemField(id uint, field string, value interface{}) error {
	switch field {
	case "title", "description", "price", "category", "photo_url", "is_active":
	default:
		return errors.New("field is not editable: " + field)
	}
	return s.DB.Model(&models.MenuItem{}).Where("id = ?", id).Update(field, value).Error
}

func (s *Store) DeleteMenuItem(id uint) error {
	return s.DB.Delete(&models.MenuItem{}, id).Error
}
