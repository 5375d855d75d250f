package payments

import (
	"time"

	"utilibill-backend/internal/api/v1/catalog"
	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	ServiceID uint            `json:"service_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Period    time.Time       `json:"period" binding:"required"`
	ReceiptID *uint           `json:"receipt_id"`
}

type PaymentResponse struct {
	ID            uint                     `json:"id"`
	UserID        uint                     `json:"user_id"`
	ServiceID     uint                     `json:"service_id"`
	ReceiptID     *uint                    `json:"receipt_id,omitempty"`
	Amount        decimal.Decimal          `json:"amount"`
	Period        time.Time                `json:"period"`
	Status        string                   `json:"status"`
	PaymentDate   *time.Time               `json:"payment_date,omitempty"`
	TransactionID string                   `json:"transaction_id,omitempty"`
	Service       *catalog.ServiceResponse `json:"service,omitempty"`
}

func ToPaymentResponse(p models.Payment) PaymentResponse {
	response := PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		ServiceID:     p.ServiceID,
		ReceiptID:     p.ReceiptID,
		Amount:        p.Amount,
		Period:        p.Period,
		Status:        p.Status,
		PaymentDate:   p.PaymentDate,
		TransactionID: p.TransactionID,
	}
	if p.Service != nil {
		service := catalog.ToServiceResponse(*p.Service)
		response.Service = &service
	}
	return response
}
