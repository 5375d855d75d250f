package services

import (
	"errors"

	"utilibill-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService manages the utility-service catalog.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ActiveServices returns the services currently offered for billing.
func (s *CatalogService) ActiveServices() ([]models.UtilityService, error) {
	var services []models.UtilityService
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// AllServices returns the full catalog, active entries first.
func (s *CatalogService) AllServices() ([]models.UtilityService, error) {
	var services []models.UtilityService
	if err := s.db.Order("is_active desc, name").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *CatalogService) GetService(id uint) (*models.UtilityService, error) {
	var service models.UtilityService
	if err := s.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (s *CatalogService) CreateService(name, description, unit string, rate decimal.Decimal, isActive bool) (*models.UtilityService, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	service := &models.UtilityService{
		Name:        name,
		Description: description,
		Unit:        unit,
		Rate:        rate,
		IsActive:    isActive,
	}
	if err := s.db.Create(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// UpdateService changes a catalog entry. Rate changes take effect for
// future receipt generation only; existing receipts keep their frozen
// rates.
func (s *CatalogService) UpdateService(id uint, name, description, unit string, rate decimal.Decimal, isActive bool) (*models.UtilityService, error) {
	service, err := s.GetService(id)
	if err != nil {
		return nil, err
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	service.Name = name
	service.Description = description
	service.Unit = unit
	service.Rate = rate
	service.IsActive = isActive

	if err := s.db.Save(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// DeactivateService retires a service from the catalog without deleting
// it, so historical receipt items keep a valid reference.
func (s *CatalogService) DeactivateService(id uint) error {
	result := s.db.Model(&models.UtilityService{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
