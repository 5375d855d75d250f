package services

import (
	"errors"
	"fmt"
	"time"

	"utilibill-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService manages single-service payments settled from the
// balance. A payment that satisfies a receipt carries an explicit
// receipt_id set at creation time.
type PaymentService struct {
	db      *gorm.DB
	catalog *CatalogService
	balance *BalanceService
}

func NewPaymentService(db *gorm.DB, catalog *CatalogService, balance *BalanceService) *PaymentService {
	return &PaymentService{db: db, catalog: catalog, balance: balance}
}

func (s *PaymentService) CreatePayment(userID, serviceID uint, amount decimal.Decimal, period time.Time, receiptID *uint) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if _, err := s.catalog.GetService(serviceID); err != nil {
		return nil, err
	}
	if receiptID != nil {
		var receipt models.Receipt
		if err := s.db.First(&receipt, *receiptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReceiptNotFound
			}
			return nil, err
		}
		if receipt.UserID != userID {
			return nil, ErrForbidden
		}
	}

	payment := &models.Payment{
		UserID:    userID,
		ServiceID: serviceID,
		ReceiptID: receiptID,
		Amount:    amount.Round(2),
		Period:    NormalizePeriod(period),
		Status:    models.PaymentStatusPending,
	}
	if err := s.db.Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) GetPayment(paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Service").First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) UserPayments(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.Preload("Service").
		Where("user_id = ?", userID).
		Order("period desc").
		Find(&payments).Error
	return payments, err
}

func (s *PaymentService) AllPayments() ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.Preload("Service").Order("period desc").Find(&payments).Error
	return payments, err
}

// Process settles a pending payment from the user's balance. The ledger
// debit, the payment completion and the linked receipt's status change
// commit together or not at all.
func (s *PaymentService) Process(paymentID uint, actor *models.User) (*models.Payment, error) {
	var processed *models.Payment
	for attempt := 0; attempt < maxBalanceRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var payment models.Payment
			if err := tx.First(&payment, paymentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPaymentNotFound
				}
				return err
			}
			if payment.UserID != actor.ID && !actor.IsStaff() {
				return ErrForbidden
			}
			if payment.Status == models.PaymentStatusCompleted {
				return ErrAlreadySettled
			}

			reference := fmt.Sprintf("payment:%d", payment.ID)
			description := fmt.Sprintf("Utility payment for %s", payment.Period.Format("2006-01"))
			if _, err := s.balance.applyTx(tx, payment.UserID, payment.Amount.Neg(),
				models.TransactionTypePayment, description, reference); err != nil {
				return err
			}

			now := time.Now()
			payment.Status = models.PaymentStatusCompleted
			payment.PaymentDate = &now
			payment.TransactionID = uuid.New().String()
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}

			if payment.ReceiptID != nil {
				if err := tx.Model(&models.Receipt{}).
					Where("id = ? AND status <> ?", *payment.ReceiptID, models.ReceiptStatusPaid).
					Updates(map[string]interface{}{
						"status":     models.ReceiptStatusPaid,
						"paid_date":  now,
						"updated_at": now,
					}).Error; err != nil {
					return err
				}
			}

			processed = &payment
			return nil
		})
		if errors.Is(err, ErrOptimisticLock) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return processed, nil
	}
	return nil, ErrOptimisticLock
}
