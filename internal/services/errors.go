package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrServiceNotFound    = errors.New("utility service not found")
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadySettled     = errors.New("already settled")
	ErrForbidden          = errors.New("access denied")
	ErrDuplicateReceipt   = errors.New("receipt already exists for this period")
	ErrNoReadings         = errors.New("no meter readings for this period")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOptimisticLock     = errors.New("data has been modified by another request, please retry")
)

// InsufficientFundsError reports both sides of a failed debit.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, available %s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
