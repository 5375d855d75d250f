package services

import (
	"time"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReadingService stores submitted meter readings. Readings are immutable
// once created; corrections are new readings for the same period.
type ReadingService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewReadingService(db *gorm.DB, catalog *CatalogService) *ReadingService {
	return &ReadingService{db: db, catalog: catalog}
}

func (s *ReadingService) SubmitReading(userID, serviceID uint, value decimal.Decimal, period time.Time) (*models.MeterReading, error) {
	if value.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if _, err := s.catalog.GetService(serviceID); err != nil {
		return nil, err
	}

	reading := &models.MeterReading{
		UserID:      userID,
		ServiceID:   serviceID,
		Value:       value,
		ReadingDate: time.Now(),
		Period:      NormalizePeriod(period),
	}
	if err := s.db.Create(reading).Error; err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *ReadingService) UserReadings(userID uint) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := s.db.Preload("Service").
		Where("user_id = ?", userID).
		Order("period desc, reading_date desc").
		Find(&readings).Error
	return readings, err
}

func (s *ReadingService) AllReadings() ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := s.db.Preload("Service").
		Order("period desc, reading_date desc").
		Find(&readings).Error
	return readings, err
}

// periodReadings returns the latest reading per service for a user and
// period. Resubmitted values for the same meter supersede earlier ones.
func (s *ReadingService) periodReadings(userID uint, period time.Time) (map[uint]models.MeterReading, error) {
	var readings []models.MeterReading
	err := s.db.Where("user_id = ? AND period = ?", userID, NormalizePeriod(period)).
		Order("reading_date asc, id asc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	latest := make(map[uint]models.MeterReading, len(readings))
	for _, r := range readings {
		latest[r.ServiceID] = r
	}
	return latest, nil
}
