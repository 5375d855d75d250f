package services

import (
	"errors"
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxBalanceRetries bounds the optimistic-lock retry loop. Concurrent
// mutations of the same balance row conflict on the version column; the
// loser re-reads and re-validates against the fresh balance.
const maxBalanceRetries = 3

// BalanceService owns the per-user balance and the append-only ledger.
// A balance mutation and its BalanceTransaction row always commit in the
// same database transaction.
type BalanceService struct {
	db           *gorm.DB
	ledgerSecret string
}

func NewBalanceService(db *gorm.DB, ledgerSecret string) *BalanceService {
	return &BalanceService{db: db, ledgerSecret: ledgerSecret}
}

func (s *BalanceService) GetBalance(userID uint) (decimal.Decimal, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// Deposit credits the balance and appends a deposit ledger entry.
func (s *BalanceService) Deposit(userID uint, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return s.apply(userID, amount, models.TransactionTypeDeposit, description, "")
}

// Withdraw debits the balance and appends a payment ledger entry. The
// balance never goes negative: a debit larger than the balance fails with
// InsufficientFundsError and leaves no partial state.
func (s *BalanceService) Withdraw(userID uint, amount decimal.Decimal, description, referenceID string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return s.apply(userID, amount.Neg(), models.TransactionTypePayment, description, referenceID)
}

// Refund credits back a previously debited amount, referencing the
// settlement it reverses.
func (s *BalanceService) Refund(userID uint, amount decimal.Decimal, description, referenceID string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return s.apply(userID, amount, models.TransactionTypeRefund, description, referenceID)
}

// ListTransactions returns the user's ledger entries, newest first.
func (s *BalanceService) ListTransactions(userID uint, limit int) ([]models.BalanceTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var transactions []models.BalanceTransaction
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (s *BalanceService) apply(userID uint, delta decimal.Decimal, txnType models.TransactionType, description, referenceID string) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	for attempt := 0; attempt < maxBalanceRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			balance, err := s.applyTx(tx, userID, delta, txnType, description, referenceID)
			if err != nil {
				return err
			}
			newBalance = balance
			return nil
		})
		if errors.Is(err, ErrOptimisticLock) {
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		return newBalance, nil
	}
	return decimal.Zero, ErrOptimisticLock
}

// applyTx performs one guarded balance mutation inside the caller's
// transaction. The UPDATE is conditioned on the version the balance was
// read at, so two concurrent mutations of the same user serialize: the
// second sees zero affected rows and the whole transaction rolls back.
func (s *BalanceService) applyTx(tx *gorm.DB, userID uint, delta decimal.Decimal, txnType models.TransactionType, description, referenceID string) (decimal.Decimal, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}

	newBalance := user.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, &InsufficientFundsError{
			Required:  delta.Neg(),
			Available: user.Balance,
		}
	}

	result := tx.Model(&models.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]interface{}{
			"balance":    newBalance,
			"version":    user.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, ErrOptimisticLock
	}

	transaction := models.BalanceTransaction{
		UserID:        user.ID,
		Amount:        delta,
		BalanceBefore: user.Balance,
		BalanceAfter:  newBalance,
		Type:          txnType,
		Status:        models.TransactionStatusCompleted,
		Description:   description,
		ReferenceID:   referenceID,
		CreatedAt:     time.Now(),
	}
	transaction.Hash = transaction.GenerateHash(s.ledgerSecret)

	if err := tx.Create(&transaction).Error; err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}
