package catalog

import (
	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type ServiceResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	IsActive    bool            `json:"is_active"`
}

func ToServiceResponse(s models.UtilityService) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Unit:        s.Unit,
		Rate:        s.Rate,
		IsActive:    s.IsActive,
	}
}
