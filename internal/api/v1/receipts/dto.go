package receipts

import (
	"time"

	"utilibill-backend/internal/api/v1/catalog"
	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type ManualReading struct {
	ServiceID uint            `json:"service_id" binding:"required"`
	Value     decimal.Decimal `json:"value"`
}

type VerifyRequest struct {
	ManualReadings []ManualReading `json:"manual_readings"`
}

type ReceiptItemResponse struct {
	ID        uint                     `json:"id"`
	ReceiptID uint                     `json:"receipt_id"`
	ServiceID uint                     `json:"service_id"`
	Quantity  decimal.Decimal          `json:"quantity"`
	Rate      decimal.Decimal          `json:"rate"`
	Amount    decimal.Decimal          `json:"amount"`
	Service   *catalog.ServiceResponse `json:"service,omitempty"`
}

type ReceiptResponse struct {
	ID             uint                  `json:"id"`
	UserID         uint                  `json:"user_id"`
	Period         time.Time             `json:"period"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	VerifiedAmount *decimal.Decimal      `json:"verified_amount,omitempty"`
	Status         string                `json:"status"`
	GeneratedDate  time.Time             `json:"generated_date"`
	PaidDate       *time.Time            `json:"paid_date,omitempty"`
	Items          []ReceiptItemResponse `json:"receipt_items"`
}

type PayResponse struct {
	Receipt    ReceiptResponse `json:"receipt"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

func ToReceiptResponse(r models.Receipt) ReceiptResponse {
	response := ReceiptResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		Period:         r.Period,
		TotalAmount:    r.TotalAmount,
		VerifiedAmount: r.VerifiedAmount,
		Status:         r.Status,
		GeneratedDate:  r.GeneratedDate,
		PaidDate:       r.PaidDate,
		Items:          make([]ReceiptItemResponse, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		itemResponse := ReceiptItemResponse{
			ID:        item.ID,
			ReceiptID: item.ReceiptID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			Rate:      item.Rate,
			Amount:    item.Amount,
		}
		if item.Service != nil {
			service := catalog.ToServiceResponse(*item.Service)
			itemResponse.Service = &service
		}
		response.Items = append(response.Items, itemResponse)
	}
	return response
}
