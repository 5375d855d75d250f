package user

import (
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
)

type UpdateUserRequest struct {
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin manager"`
}

type UserListItem struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toUserListItem(u models.User) UserListItem {
	return UserListItem{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}
