package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// verifyTolerance is the absolute mismatch allowed between a receipt's
// stored total and the total recomputed at current rates: one minor
// currency unit.
var verifyTolerance = decimal.New(1, -2)

// ReceiptService generates billing documents from meter readings and
// settles them against the balance ledger.
type ReceiptService struct {
	db       *gorm.DB
	catalog  *CatalogService
	readings *ReadingService
	balance  *BalanceService
}

func NewReceiptService(db *gorm.DB, catalog *CatalogService, readings *ReadingService, balance *BalanceService) *ReceiptService {
	return &ReceiptService{db: db, catalog: catalog, readings: readings, balance: balance}
}

// CalculationDetail is one line of a verification run, priced at the
// current catalog rate.
type CalculationDetail struct {
	ServiceID         uint            `json:"service_id"`
	ServiceName       string          `json:"service_name"`
	ServiceUnit       string          `json:"service_unit"`
	Value             decimal.Decimal `json:"value"`
	ActualRate        decimal.Decimal `json:"actual_rate"`
	OriginalRate      decimal.Decimal `json:"original_rate"`
	RateChanged       bool            `json:"rate_changed"`
	RateChangePercent decimal.Decimal `json:"rate_change_percent"`
	Amount            decimal.Decimal `json:"amount"`
}

// VerificationResult reports a verification run. StoredTotal is never
// rewritten from CalculatedTotal; callers always see both.
type VerificationResult struct {
	ReceiptID          uint                `json:"receipt_id"`
	IsMatch            bool                `json:"is_match"`
	StoredTotal        decimal.Decimal     `json:"stored_total"`
	CalculatedTotal    decimal.Decimal     `json:"calculated_total"`
	Difference         decimal.Decimal     `json:"difference"`
	HasRateChanges     bool                `json:"has_rate_changes"`
	CalculationDetails []CalculationDetail `json:"calculation_details"`
	Status             string              `json:"status"`
	VerifiedAt         time.Time           `json:"verified_at"`
}

// ConsumptionChange compares one service line against the previous
// period's receipt.
type ConsumptionChange struct {
	QuantityChange   decimal.Decimal `json:"quantity_change"`
	AmountChange     decimal.Decimal `json:"amount_change"`
	ChangePercentage decimal.Decimal `json:"change_percentage"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
}

type ComparisonResult struct {
	CurrentReceipt     *models.Receipt              `json:"current_receipt"`
	PreviousReceipt    *models.Receipt              `json:"previous_receipt"`
	ConsumptionChanges map[string]ConsumptionChange `json:"consumption_changes"`
}

// Generate computes the billing document for a user and period from that
// period's meter readings and the current catalog rates. The rate is
// frozen into each item so later catalog changes never alter this
// receipt. One receipt per (user, period); duplicates fail.
func (s *ReceiptService) Generate(userID uint, period time.Time) (*models.Receipt, error) {
	period = NormalizePeriod(period)

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var existing models.Receipt
	err := s.db.Where("user_id = ? AND period = ?", userID, period).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReceipt
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	latest, err := s.readings.periodReadings(userID, period)
	if err != nil {
		return nil, err
	}
	if len(latest) == 0 {
		return nil, ErrNoReadings
	}

	receipt := &models.Receipt{
		UserID:        userID,
		Period:        period,
		Status:        models.ReceiptStatusGenerated,
		GeneratedDate: time.Now(),
	}

	total := decimal.Zero
	for _, reading := range latest {
		service, err := s.catalog.GetService(reading.ServiceID)
		if err != nil {
			return nil, err
		}
		// Round half-up to the currency's minor unit.
		amount := reading.Value.Mul(service.Rate).Round(2)
		receipt.Items = append(receipt.Items, models.ReceiptItem{
			ServiceID: service.ID,
			Quantity:  reading.Value,
			Rate:      service.Rate,
			Amount:    amount,
		})
		total = total.Add(amount)
	}
	receipt.TotalAmount = total.Round(2)

	// The unique index on (user_id, period) backs the pre-check above
	// against racing generators; a race loses here and gets the same
	// typed error.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(receipt).Error
	}); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReceipt
		}
		return nil, err
	}
	return receipt, nil
}

// isUniqueViolation recognizes the duplicate-key errors of both backends
// in use: postgres (SQLSTATE 23505) and the sqlite used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// GenerateForAll generates receipts for every user with readings in the
// period. Users already billed for the period are skipped.
func (s *ReceiptService) GenerateForAll(period time.Time) (generated, skipped int, err error) {
	period = NormalizePeriod(period)

	var userIDs []uint
	if err := s.db.Model(&models.MeterReading{}).
		Where("period = ?", period).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return 0, 0, err
	}

	for _, id := range userIDs {
		if _, genErr := s.Generate(id, period); genErr != nil {
			if errors.Is(genErr, ErrDuplicateReceipt) || errors.Is(genErr, ErrNoReadings) {
				skipped++
				continue
			}
			return generated, skipped, genErr
		}
		generated++
	}
	return generated, skipped, nil
}

// GetDetails loads a receipt with its items and their services, enforcing
// ownership.
func (s *ReceiptService) GetDetails(receiptID uint, actor *models.User) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.db.Preload("Items.Service").First(&receipt, receiptID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}
	if receipt.UserID != actor.ID && !actor.IsStaff() {
		return nil, ErrForbidden
	}
	return &receipt, nil
}

// UserReceipts returns a user's receipts with details, newest period
// first.
func (s *ReceiptService) UserReceipts(userID uint) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := s.db.Preload("Items.Service").
		Where("user_id = ?", userID).
		Order("period desc").
		Find(&receipts).Error
	return receipts, err
}

// Verify re-prices each receipt item at the current catalog rate and
// compares the recomputed total with the stored one. Manual readings, if
// supplied, replace the stored quantities per service. A match promotes a
// generated receipt to verified and records the recomputed total as
// verified_amount; a mismatch is reported without touching status. The
// stored total is never rewritten.
func (s *ReceiptService) Verify(receiptID uint, actor *models.User, manualReadings map[uint]decimal.Decimal) (*VerificationResult, error) {
	receipt, err := s.GetDetails(receiptID, actor)
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{
		ReceiptID:   receipt.ID,
		StoredTotal: receipt.TotalAmount,
		VerifiedAt:  time.Now(),
	}

	calculated := decimal.Zero
	for _, item := range receipt.Items {
		value := item.Quantity
		if manual, ok := manualReadings[item.ServiceID]; ok {
			value = manual
		}

		// A retired service keeps its frozen rate; only live catalog
		// entries can differ from generation time.
		actualRate := item.Rate
		if service, svcErr := s.catalog.GetService(item.ServiceID); svcErr == nil {
			actualRate = service.Rate
		}

		detail := CalculationDetail{
			ServiceID:    item.ServiceID,
			Value:        value,
			ActualRate:   actualRate,
			OriginalRate: item.Rate,
			RateChanged:  !actualRate.Equal(item.Rate),
			Amount:       value.Mul(actualRate).Round(2),
		}
		if item.Service != nil {
			detail.ServiceName = item.Service.Name
			detail.ServiceUnit = item.Service.Unit
		}
		if detail.RateChanged && item.Rate.IsPositive() {
			detail.RateChangePercent = actualRate.Sub(item.Rate).
				Div(item.Rate).Mul(decimal.NewFromInt(100)).Round(2)
			result.HasRateChanges = true
		}

		calculated = calculated.Add(detail.Amount)
		result.CalculationDetails = append(result.CalculationDetails, detail)
	}

	result.CalculatedTotal = calculated.Round(2)
	result.Difference = result.CalculatedTotal.Sub(receipt.TotalAmount)
	result.IsMatch = result.Difference.Abs().LessThanOrEqual(verifyTolerance)
	result.Status = receipt.Status

	report, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"last_verification": report,
		"updated_at":        time.Now(),
	}
	// Status only moves forward. A mismatch, or a receipt that is already
	// verified or paid, keeps its current status.
	if result.IsMatch && receipt.Status == models.ReceiptStatusGenerated {
		updates["status"] = models.ReceiptStatusVerified
		updates["verified_amount"] = result.CalculatedTotal
		result.Status = models.ReceiptStatusVerified
	}

	if err := s.db.Model(&models.Receipt{}).Where("id = ?", receipt.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Pay settles a receipt from the user's balance. The ledger debit and the
// receipt status change commit in one database transaction, so a failed
// status update also rolls back the withdrawal.
func (s *ReceiptService) Pay(receiptID uint, actor *models.User) (*models.Receipt, error) {
	var paid *models.Receipt
	for attempt := 0; attempt < maxBalanceRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var receipt models.Receipt
			if err := tx.First(&receipt, receiptID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrReceiptNotFound
				}
				return err
			}
			if receipt.UserID != actor.ID && !actor.IsStaff() {
				return ErrForbidden
			}
			if receipt.Status == models.ReceiptStatusPaid {
				return ErrAlreadySettled
			}

			reference := fmt.Sprintf("receipt:%d", receipt.ID)
			description := fmt.Sprintf("Utility receipt for %s", receipt.Period.Format("2006-01"))
			if _, err := s.balance.applyTx(tx, receipt.UserID, receipt.TotalAmount.Neg(),
				models.TransactionTypePayment, description, reference); err != nil {
				return err
			}

			now := time.Now()
			receipt.Status = models.ReceiptStatusPaid
			receipt.PaidDate = &now
			if err := tx.Save(&receipt).Error; err != nil {
				return err
			}
			paid = &receipt
			return nil
		})
		if errors.Is(err, ErrOptimisticLock) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return paid, nil
	}
	return nil, ErrOptimisticLock
}

// Compare relates a receipt to the user's previous one, per service.
func (s *ReceiptService) Compare(receiptID uint, actor *models.User) (*ComparisonResult, error) {
	current, err := s.GetDetails(receiptID, actor)
	if err != nil {
		return nil, err
	}

	result := &ComparisonResult{
		CurrentReceipt:     current,
		ConsumptionChanges: map[string]ConsumptionChange{},
	}

	var previous models.Receipt
	err = s.db.Preload("Items.Service").
		Where("user_id = ? AND period < ?", current.UserID, current.Period).
		Order("period desc").
		First(&previous).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.PreviousReceipt = &previous

	previousItems := make(map[uint]models.ReceiptItem, len(previous.Items))
	for _, item := range previous.Items {
		previousItems[item.ServiceID] = item
	}

	for _, item := range current.Items {
		prev, ok := previousItems[item.ServiceID]
		if !ok || item.Service == nil {
			continue
		}
		change := ConsumptionChange{
			QuantityChange:   item.Quantity.Sub(prev.Quantity),
			AmountChange:     item.Amount.Sub(prev.Amount),
			CurrentQuantity:  item.Quantity,
			PreviousQuantity: prev.Quantity,
		}
		if prev.Quantity.IsPositive() {
			change.ChangePercentage = change.QuantityChange.
				Div(prev.Quantity).Mul(decimal.NewFromInt(100)).Round(2)
		}
		result.ConsumptionChanges[item.Service.Name] = change
	}
	return result, nil
}
