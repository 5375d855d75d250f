package billing

import "time"

type GenerateRequest struct {
	Period time.Time `json:"period" binding:"required"`
	UserID *uint     `json:"user_id"`
}

type GenerateAllResponse struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}
