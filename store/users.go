package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verateam/vera-bot/models"
)

func (s *Store) GetUser(id int64) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser creates the row on first contact and backfills the display
// name and username when they are still empty. Existing values win.
func (s *Store) EnsureUser(id int64, fullName, username string) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{
			ID:       id,
			Role:     models.RoleGuest,
			FullName: fullName,
			Username: username,
		}
		if err := s.DB.Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}

	updates := map[string]interface{}{}
	if user.FullName == "" && fullName != "" {
		updates["fullname"] = fullName
	}
	if user.Username == "" && username != "" {
		updates["username"] = username
	}
	if len(updates) > 0 {
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

// UpsertUser inserts or updates a user card keyed by Telegram ID. Only the
// mutable fields move; the ID never changes.
func (s *Store) UpsertUser(u *models.User) (created bool, err error) {
	existing, err := s.GetUser(u.ID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, s.DB.Create(u).Error
	}
	err = s.DB.Model(&models.User{}).Where("user_id = ?", u.ID).Updates(map[string]interface{}{
		"role":     u.Role,
		"fullname": u.FullName,
		"phone":    u.Phone,
		"username": u.Username,
		"passport": u.Passport,
	}).Error
	return false, err
}

func (s *Store) UpdateUserField(id int64, field string, value interface{}) error {
	switch field {
	case "fullname", "phone", "passport", "role":
	default:
		return errors.New("field is not editable: " + field)
	}
	return s.DB.Model(&models.User{}).Where("user_id = ?", id).Update(field, value).Error
}

func (s *Store) ListUsers(limit int) ([]models.User, error) {
	var users []models.User
	q := s.DB.Order("user_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return users, q.Find(&users).Error
}

func (s *Store) ListUsersByRole(roles ...models.Role) ([]models.User, error) {
	var users []models.User
	err := s.DB.Where("role IN ?", roles).Order("fullname").Find(&users).Error
	return users, err
}

// DeleteUser removes the row entirely, which also revokes access: the role
// resolver treats a missing row as guest.
func (s *Store) DeleteUser(id int64) error {
	return s.DB.Delete(&models.User{}, "user_id = ?", id).Error
}
