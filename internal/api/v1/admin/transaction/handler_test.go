package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"utilibill-backend/internal/api/v1/admin/transaction"
	"utilibill-backend/internal/models"
	"utilibill-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRouter() (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.BalanceTransaction{})
	db.AutoMigrate(&models.User{}, &models.BalanceTransaction{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := transaction.NewHandler(services.NewBalanceService(db, "test-secret"))
	transaction.RegisterRoutes(r.Group("/admin"), h)
	return r, db
}

func seedTransactions(db *gorm.DB) {
	entries := []models.BalanceTransaction{
		{
			UserID:        1,
			Amount:        decimal.NewFromInt(100),
			BalanceBefore: decimal.Zero,
			BalanceAfter:  decimal.NewFromInt(100),
			Type:          models.TransactionTypeDeposit,
			Status:        models.TransactionStatusCompleted,
			Description:   "Top up",
			CreatedAt:     time.Now().Add(-2 * time.Hour),
			Hash:          "hash1",
		},
		{
			UserID:        1,
			Amount:        decimal.NewFromInt(-50),
			BalanceBefore: decimal.NewFromInt(100),
			BalanceAfter:  decimal.NewFromInt(50),
			Type:          models.TransactionTypePayment,
			Status:        models.TransactionStatusCompleted,
			Description:   "Utility receipt for 2026-03",
			ReferenceID:   "receipt:1",
			CreatedAt:     time.Now().Add(-time.Hour),
			Hash:          "hash2",
		},
		{
			UserID:        2,
			Amount:        decimal.NewFromInt(200),
			BalanceBefore: decimal.Zero,
			BalanceAfter:  decimal.NewFromInt(200),
			Type:          models.TransactionTypeDeposit,
			Status:        models.TransactionStatusCompleted,
			Description:   "Top up",
			CreatedAt:     time.Now(),
			Hash:          "hash3",
		},
	}
	for i := range entries {
		db.Create(&entries[i])
	}
}

func TestListTransactions(t *testing.T) {
	r, db := setupTestRouter()
	seedTransactions(db)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:           "List All",
			query:          "",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Status int                                 `json:"status"`
					Data   transaction.TransactionListResponse `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, 200, resp.Status)
				assert.Equal(t, int64(3), resp.Data.Total)
				assert.Len(t, resp.Data.Transactions, 3)
			},
		},
		{
			name:           "Filter by UserID",
			query:          "?user_id=1",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Status int                                 `json:"status"`
					Data   transaction.TransactionListResponse `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, int64(2), resp.Data.Total)
				assert.Equal(t, uint(1), resp.Data.Transactions[0].UserID)
			},
		},
		{
			name:           "Filter by Type",
			query:          "?type=payment",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Status int                                 `json:"status"`
					Data   transaction.TransactionListResponse `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, int64(1), resp.Data.Total)
				assert.Equal(t, models.TransactionTypePayment, resp.Data.Transactions[0].Type)
			},
		},
		{
			name:           "Filter by MinAmount",
			query:          "?min_amount=150",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Status int                                 `json:"status"`
					Data   transaction.TransactionListResponse `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, int64(1), resp.Data.Total)
				assert.Equal(t, "200.00", resp.Data.Transactions[0].Amount.StringFixed(2))
			},
		},
		{
			name:           "Invalid MinAmount",
			query:          "?min_amount=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Page",
			query:          "?page=0",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/admin/transactions"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes())
			}
		})
	}
}

func TestExportTransactions(t *testing.T) {
	r, db := setupTestRouter()
	seedTransactions(db)

	req, _ := http.NewRequest(http.MethodGet, "/admin/transactions/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=")

	csvContent := w.Body.String()
	assert.Contains(t, csvContent, "ID,Time,User ID,Type,Amount")
	assert.Contains(t, csvContent, "-50.00")
	assert.Contains(t, csvContent, "receipt:1")
}
