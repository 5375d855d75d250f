package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterReading is a submitted meter value for one service and billing
// period. Immutable once created.
type MeterReading struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UserID      uint            `gorm:"index;not null"`
	ServiceID   uint            `gorm:"index;not null"`
	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReadingDate time.Time       `gorm:"not null"`
	Period      time.Time       `gorm:"index;not null"`

	Service *UtilityService `gorm:"foreignKey:ServiceID"`
}
