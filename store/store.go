package store

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verateam/vera-bot/config"
	"github.com/verateam/vera-bot/models"
)

// Store owns every persisted row-set. Handlers never touch gorm directly.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Open connects using the configured driver. Sqlite is the default; mysql
// is selected with DB_DRIVER=mysql and a DSN.
func Open(cfg *config.Config) (*Store, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.DBFile), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db), nil
}

// AutoMigrate applies the additive schema. Existing deployments only ever
// gain columns; rows written before a column existed get its default
// backfilled so the enums stay closed.
func (s *Store) AutoMigrate() error {
	err := s.DB.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.MenuItem{},
		&models.KitchenEntry{},
		&models.Photo{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.BookingPending).Error; err != nil {
		return fmt.Errorf("backfill booking status: %w", err)
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("consent IS NULL OR consent = ''").
		Update("consent", models.ConsentNo).Error; err != nil {
		return fmt.Errorf("backfill booking consent: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
