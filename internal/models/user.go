package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string          `gorm:"uniqueIndex;not null"`
	Password  string          `gorm:"not null"`
	Role      string          `gorm:"not null;default:'user'"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Version   int             `gorm:"default:1"`
}

// IsStaff reports whether the user may read other users' resources.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
