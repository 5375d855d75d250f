package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	ReceiptStatusGenerated = "generated"
	ReceiptStatusVerified  = "verified"
	ReceiptStatusPaid      = "paid"
)

// Receipt is the billing document for one user and period. Status only
// moves forward: generated -> verified -> paid (verified may be skipped).
// The (user_id, period) pair is unique so a period is billed once.
type Receipt struct {
	ID               uint             `gorm:"primarykey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	UserID           uint             `gorm:"not null;uniqueIndex:idx_receipts_user_period"`
	Period           time.Time        `gorm:"not null;uniqueIndex:idx_receipts_user_period"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	VerifiedAmount   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status           string           `gorm:"type:varchar(20);not null;default:'generated'"`
	GeneratedDate    time.Time        `gorm:"not null"`
	PaidDate         *time.Time
	// Last verification report, kept for auditing. TotalAmount is never
	// rewritten from it; callers get both values.
	LastVerification datatypes.JSON

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

// ReceiptItem freezes the catalog rate at generation time so later rate
// changes never alter historical receipts.
type ReceiptItem struct {
	ID        uint            `gorm:"primarykey"`
	ReceiptID uint            `gorm:"index;not null"`
	ServiceID uint            `gorm:"not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Service *UtilityService `gorm:"foreignKey:ServiceID"`
}
