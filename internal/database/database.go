package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"utilibill-backend/internal/models"
)

// Connect opens the backing store. The handle is returned to the caller
// and passed to each service explicitly; there is no package-level
// database singleton.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every model, including the
// unique (user_id, period) receipt index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UtilityService{},
		&models.MeterReading{},
		&models.Receipt{},
		&models.ReceiptItem{},
		&models.BalanceTransaction{},
		&models.Payment{},
	)
}
