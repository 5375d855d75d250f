package service

import "github.com/shopspring/decimal"

type ServiceRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description"`
	Unit        string          `json:"unit" binding:"required,max=20"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	IsActive    *bool           `json:"is_active"`
}

func (r *ServiceRequest) active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}
