package balance

import (
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

type BalanceResponse struct {
	UserID   uint            `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type DepositResponse struct {
	NewBalance      decimal.Decimal `json:"new_balance"`
	DepositedAmount decimal.Decimal `json:"deposited_amount"`
}

type TransactionResponse struct {
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
}

func toTransactionResponse(t models.BalanceTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		CreatedAt:     t.CreatedAt,
		UserID:        t.UserID,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Type:          t.Type,
		Status:        t.Status,
		Description:   t.Description,
		ReferenceID:   t.ReferenceID,
	}
}
