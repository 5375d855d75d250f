package main

import (
	"log"
	"time"

	"utilibill-backend/config"
	"utilibill-backend/internal/api"
	"utilibill-backend/internal/database"
	"utilibill-backend/internal/models"
	"utilibill-backend/internal/services"
	"utilibill-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @title utilibill-backend API
// @version 1.0
// @description Residential utility billing portal backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	if err := seedAdminUser(db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if err := seedCatalog(db); err != nil {
		log.Fatalf("failed to seed service catalog: %v", err)
	}

	catalogService := services.NewCatalogService(db)
	balanceService := services.NewBalanceService(db, cfg.LedgerSecret)
	readingService := services.NewReadingService(db, catalogService)
	receiptService := services.NewReceiptService(db, catalogService, readingService, balanceService)

	scheduler := services.NewBillingScheduler(receiptService, 6*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouterWithDB(cfg, db, redisClient)

	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func seedAdminUser(db *gorm.DB) error {
	adminUsername := "admin"
	adminPassword := "admin123"

	var admin models.User
	err := db.Where("username = ?", adminUsername).First(&admin).Error
	if err == nil {
		log.Println("Admin user already exists.")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin = models.User{
		Username: adminUsername,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Admin user created successfully!")
	return nil
}

// seedCatalog installs a default tariff table on first boot so the
// portal is usable before an administrator configures anything.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.UtilityService{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.UtilityService{
		{Name: "Electricity", Description: "Metered electricity supply", Unit: "kWh", Rate: decimal.NewFromFloat(4.50), IsActive: true},
		{Name: "Cold Water", Description: "Metered cold water supply", Unit: "m3", Rate: decimal.NewFromFloat(35.20), IsActive: true},
		{Name: "Hot Water", Description: "Metered hot water supply", Unit: "m3", Rate: decimal.NewFromFloat(180.55), IsActive: true},
		{Name: "Gas", Description: "Metered natural gas supply", Unit: "m3", Rate: decimal.NewFromFloat(7.30), IsActive: true},
	}
	if err := db.Create(&defaults).Error; err != nil {
		return err
	}
	log.Println("Default service catalog created.")
	return nil
}
