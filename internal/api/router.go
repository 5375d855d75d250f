package api

import (
	"utilibill-backend/config"
	adminBilling "utilibill-backend/internal/api/v1/admin/billing"
	adminService "utilibill-backend/internal/api/v1/admin/service"
	adminTransaction "utilibill-backend/internal/api/v1/admin/transaction"
	adminUser "utilibill-backend/internal/api/v1/admin/user"
	"utilibill-backend/internal/api/v1/auth"
	"utilibill-backend/internal/api/v1/balance"
	"utilibill-backend/internal/api/v1/catalog"
	"utilibill-backend/internal/api/v1/payments"
	"utilibill-backend/internal/api/v1/readings"
	"utilibill-backend/internal/api/v1/receipts"
	"utilibill-backend/internal/database"
	"utilibill-backend/internal/middleware"
	"utilibill-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter connects to the database and cache described by cfg and
// builds the full HTTP surface.
func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	return NewRouterWithDB(cfg, db, redisClient), nil
}

// NewRouterWithDB wires handlers onto an existing database handle.
// Tests use it with an in-memory sqlite database and a nil (or
// miniredis-backed) cache client.
func NewRouterWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	userService := services.NewUserService(db, redisClient)
	authService := services.NewAuthService(db, cfg.JWTSecret)
	denylist := services.NewTokenDenylist(redisClient)
	balanceService := services.NewBalanceService(db, cfg.LedgerSecret)
	catalogService := services.NewCatalogService(db)
	readingService := services.NewReadingService(db, catalogService)
	receiptService := services.NewReceiptService(db, catalogService, readingService, balanceService)
	paymentService := services.NewPaymentService(db, catalogService, balanceService)

	authHandler := auth.NewHandler(authService, userService, denylist, cfg.JWTSecret)
	balanceHandler := balance.NewHandler(balanceService, userService)
	catalogHandler := catalog.NewHandler(catalogService)
	readingsHandler := readings.NewHandler(readingService)
	receiptsHandler := receipts.NewHandler(receiptService, balanceService, userService)
	paymentsHandler := payments.NewHandler(paymentService, userService)
	adminUserHandler := adminUser.NewHandler(userService)
	adminServiceHandler := adminService.NewHandler(catalogService)
	adminTransactionHandler := adminTransaction.NewHandler(balanceService)
	adminBillingHandler := adminBilling.NewHandler(readingService, paymentService, receiptService)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, authHandler)

		authorized := v1.Group("/")
		authorized.Use(middleware.Auth(cfg.JWTSecret, userService, denylist))
		{
			auth.RegisterProtectedRoutes(authorized, authHandler)
			balance.RegisterRoutes(authorized, balanceHandler)
			catalog.RegisterRoutes(authorized, catalogHandler)
			readings.RegisterRoutes(authorized, readingsHandler)
			receipts.RegisterRoutes(authorized, receiptsHandler)
			payments.RegisterRoutes(authorized, paymentsHandler)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret, userService, denylist))
		{
			adminUser.RegisterRoutes(admin, adminUserHandler)
			adminService.RegisterRoutes(admin, adminServiceHandler)
			adminTransaction.RegisterRoutes(admin, adminTransactionHandler)
			adminBilling.RegisterRoutes(admin, adminBillingHandler)
		}
	}

	return router
}
