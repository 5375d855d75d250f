package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
	TransactionTypePayment TransactionType = "payment"
	TransactionTypeRefund  TransactionType = "refund"
)

const TransactionStatusCompleted = "completed"

// BalanceTransaction is an append-only ledger entry. Rows are never
// updated or deleted after creation; they outlive the user object that
// produced them.
type BalanceTransaction struct {
	ID            uint            `gorm:"primarykey"`
	CreatedAt     time.Time       `gorm:"precision:3"` // Millisecond precision
	UserID        uint            `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"` // signed: deposits > 0, payments < 0
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Type          TransactionType `gorm:"type:varchar(20);index;not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'completed'"`
	Description   string          `gorm:"type:text"`
	ReferenceID   string          `gorm:"type:varchar(100);index"` // receipt or payment being settled
	Hash          string          `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the ledger entry.
func (t *BalanceTransaction) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s|%s",
		t.UserID, t.CreatedAt.UnixNano(),
		t.Amount.StringFixed(2), t.BalanceBefore.StringFixed(2), t.BalanceAfter.StringFixed(2),
		t.Type, t.Description, t.ReferenceID)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
