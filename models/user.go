package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Role int

const (
	RoleGuest Role = 0
	RoleStaff Role = 1
	RoleAdmin Role = 2
)

// ParseRole normalizes a stored role value. Old deployments wrote roles as
// text ("guest"/"staff"/"admin"); anything unknown falls back to guest.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "staff":
		return RoleStaff
	case "guest":
		return RoleGuest
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		switch Role(n) {
		case RoleStaff:
			return RoleStaff
		case RoleAdmin:
			return RoleAdmin
		}
	}
	return RoleGuest
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleStaff:
		return "staff"
	default:
		return "guest"
	}
}

// Scan accepts both the integer encoding and the legacy text encoding.
func (r *Role) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*r = Role(v)
	case []byte:
		*r = ParseRole(string(v))
	case string:
		*r = ParseRole(v)
	case nil:
		*r = RoleGuest
	default:
		return fmt.Errorf("unsupported role value %T", value)
	}
	if *r < RoleGuest || *r > RoleAdmin {
		*r = RoleGuest
	}
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return int64(r), nil
}

// User is a Telegram identity known to the bot. ID is the Telegram user ID
// and never changes once the row exists.
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false;column:user_id"`
	Role      Role   `gorm:"not null;default:0"`
	FullName  string `gorm:"type:varchar(255);column:fullname"`
	Phone     string `gorm:"type:varchar(64)"`
	Username  string `gorm:"type:varchar(255)"`
	Passport  string `gorm:"type:varchar(64)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
