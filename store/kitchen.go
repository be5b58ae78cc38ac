package store

import "github.com/verateam/vera-bot/models"

func (s *Store) AddKitchenEntry(kind models.ListKind, title string) error {
	return s.DB.Create(&models.KitchenEntry{Kind: kind, Title: title}).Error
}

func (s *Store) ListKitchenEntries(kind models.ListKind) ([]models.KitchenEntry, error) {
	var entries []models.KitchenEntry
	err := s.DB.Where("kind = ?", kind).Order("id DESC").Find(&entries).Error
	return entries, err
}

func (s *Store) DeleteKitchenEntry(kind models.ListKind, id uint) error {
	return s.DB.Where("kind = ?", kind).Delete(&models.KitchenEntry{}, id).Error
}
