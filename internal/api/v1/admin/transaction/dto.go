package transaction

import (
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type TransactionListItem struct {
	ID            uint                   `json:"id"`
	CreatedAt     time.Time              `json:"created_at"`
	UserID        uint                   `json:"user_id"`
	Amount        decimal.Decimal        `json:"amount"`
	BalanceBefore decimal.Decimal        `json:"balance_before"`
	BalanceAfter  decimal.Decimal        `json:"balance_after"`
	Type          models.TransactionType `json:"type"`
	Status        string                 `json:"status"`
	Description   string                 `json:"description"`
	ReferenceID   string                 `json:"reference_id"`
	Hash          string                 `json:"hash"`
}

type TransactionListResponse struct {
	Transactions []TransactionListItem `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
