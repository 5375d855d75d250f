package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UtilityService is a catalog entry: a billable utility with its current
// per-unit rate. Rates change over time; receipts freeze the rate at
// generation time, so the catalog row always holds the current price only.
type UtilityService struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsActive    bool            `gorm:"default:true"`
}
