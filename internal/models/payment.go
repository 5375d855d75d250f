package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Payment is a single-service payment settled from the balance. ReceiptID
// is the durable link to the receipt it satisfies; it is set when the
// payment is created, never guessed afterwards by amount matching.
type Payment struct {
	ID            uint `gorm:"primarykey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint            `gorm:"index;not null"`
	ServiceID     uint            `gorm:"index;not null"`
	ReceiptID     *uint           `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Period        time.Time       `gorm:"not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDate   *time.Time
	TransactionID string `gorm:"type:varchar(100)"`

	Service *UtilityService `gorm:"foreignKey:ServiceID"`
}
