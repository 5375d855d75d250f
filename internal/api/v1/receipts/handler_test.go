package receipts_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"utilibill-backend/internal/api/v1/receipts"
	"utilibill-backend/internal/models"
	"utilibill-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type testEnv struct {
	db   *gorm.DB
	user models.User
}

// setupTestRouter builds the receipts routes over an in-memory database
// with the authenticated user injected directly into the context.
func setupTestRouter(t *testing.T) (*gin.Engine, *testEnv) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.UtilityService{}, &models.MeterReading{},
		&models.Receipt{}, &models.ReceiptItem{}, &models.BalanceTransaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	user := models.User{
		Username: "alice",
		Password: "hashed",
		Role:     models.RoleUser,
		Balance:  decimal.NewFromInt(300),
		Version:  1,
	}
	db.Create(&user)

	catalog := services.NewCatalogService(db)
	balance := services.NewBalanceService(db, "test-secret")
	readingSvc := services.NewReadingService(db, catalog)
	receiptSvc := services.NewReceiptService(db, catalog, readingSvc, balance)
	users := services.NewUserService(db, nil)

	electricity := models.UtilityService{
		Name: "Electricity", Unit: "kWh",
		Rate: decimal.RequireFromString("4.50"), IsActive: true,
	}
	db.Create(&electricity)

	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = readingSvc.SubmitReading(user.ID, electricity.ID, decimal.NewFromInt(10), period)
	assert.NoError(t, err)
	_, err = receiptSvc.Generate(user.ID, period)
	assert.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", user)
	})
	receipts.RegisterRoutes(r.Group("/"), receipts.NewHandler(receiptSvc, balance, users))

	return r, &testEnv{db: db, user: user}
}

func TestListReceiptsEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/receipts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int                        `json:"status"`
		Data   []receipts.ReceiptResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "45.00", resp.Data[0].TotalAmount.StringFixed(2))
	assert.Equal(t, models.ReceiptStatusGenerated, resp.Data[0].Status)
	assert.Len(t, resp.Data[0].Items, 1)
}

func TestPayReceiptEndpoint(t *testing.T) {
	r, env := setupTestRouter(t)

	var receipt models.Receipt
	env.db.Where("user_id = ?", env.user.ID).First(&receipt)

	url := fmt.Sprintf("/receipts/%d/pay", receipt.ID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int                 `json:"status"`
		Data   receipts.PayResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ReceiptStatusPaid, resp.Data.Receipt.Status)
	assert.Equal(t, "255.00", resp.Data.NewBalance.StringFixed(2))

	// Settling twice conflicts.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, url, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyReceiptEndpoint(t *testing.T) {
	r, env := setupTestRouter(t)

	var receipt models.Receipt
	env.db.Where("user_id = ?", env.user.ID).First(&receipt)

	url := fmt.Sprintf("/receipts/%d/verify", receipt.ID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int                         `json:"status"`
		Data   services.VerificationResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsMatch)
	assert.Equal(t, models.ReceiptStatusVerified, resp.Data.Status)
}

func TestGetReceiptNotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/receipts/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
