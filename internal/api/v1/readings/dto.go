package readings

import (
	"time"

	"utilibill-backend/internal/api/v1/catalog"
	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type SubmitReadingRequest struct {
	ServiceID uint            `json:"service_id" binding:"required"`
	Value     decimal.Decimal `json:"value" binding:"required"`
	Period    time.Time       `json:"period" binding:"required"`
}

type ReadingResponse struct {
	ID          uint                     `json:"id"`
	UserID      uint                     `json:"user_id"`
	ServiceID   uint                     `json:"service_id"`
	Value       decimal.Decimal          `json:"value"`
	ReadingDate time.Time                `json:"reading_date"`
	Period      time.Time                `json:"period"`
	Service     *catalog.ServiceResponse `json:"service,omitempty"`
}

func ToReadingResponse(r models.MeterReading) ReadingResponse {
	response := ReadingResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ServiceID:   r.ServiceID,
		Value:       r.Value,
		ReadingDate: r.ReadingDate,
		Period:      r.Period,
	}
	if r.Service != nil {
		service := catalog.ToServiceResponse(*r.Service)
		response.Service = &service
	}
	return response
}
