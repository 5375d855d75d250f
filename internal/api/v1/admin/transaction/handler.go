package transaction

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"utilibill-backend/internal/models"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	balance *services.BalanceService
}

func NewHandler(balance *services.BalanceService) *Handler {
	return &Handler{balance: balance}
}

func parseFilter(c *gin.Context) (services.TransactionFilter, bool) {
	filter := services.TransactionFilter{}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return filter, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return filter, false
	}
	filter.Page = page
	filter.Limit = limit

	if userIDStr, exists := c.GetQuery("user_id"); exists {
		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return filter, false
		}
		uid := uint(userID)
		filter.UserID = &uid
	}

	if typeStr, exists := c.GetQuery("type"); exists {
		t := models.TransactionType(typeStr)
		filter.Type = &t
	}

	if startStr, exists := c.GetQuery("start_time"); exists {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid start_time"))
			return filter, false
		}
		filter.StartTime = &start
	}
	if endStr, exists := c.GetQuery("end_time"); exists {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid end_time"))
			return filter, false
		}
		filter.EndTime = &end
	}

	if minStr, exists := c.GetQuery("min_amount"); exists {
		min, err := decimal.NewFromString(minStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid min_amount"))
			return filter, false
		}
		filter.MinAmount = &min
	}
	if maxStr, exists := c.GetQuery("max_amount"); exists {
		max, err := decimal.NewFromString(maxStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid max_amount"))
			return filter, false
		}
		filter.MaxAmount = &max
	}

	return filter, true
}

// ListTransactions godoc
// @Summary List ledger entries with filtering. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param user_id query int false "Filter by user ID"
// @Param type query string false "Filter by transaction type"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Param min_amount query string false "Filter by minimum amount"
// @Param max_amount query string false "Filter by maximum amount"
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Router /admin/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	transactions, total, err := h.balance.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]TransactionListItem, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, TransactionListItem{
			ID:            t.ID,
			CreatedAt:     t.CreatedAt,
			UserID:        t.UserID,
			Amount:        t.Amount,
			BalanceBefore: t.BalanceBefore,
			BalanceAfter:  t.BalanceAfter,
			Type:          t.Type,
			Status:        t.Status,
			Description:   t.Description,
			ReferenceID:   t.ReferenceID,
			Hash:          t.Hash,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: items,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}))
}

// ExportTransactions godoc
// @Summary Export filtered ledger entries as CSV. Admin only.
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Success 200 {string} string "CSV content"
// @Router /admin/transactions/export [get]
func (h *Handler) ExportTransactions(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	// Export is not paginated.
	filter.Page = 1
	filter.Limit = 10000

	transactions, _, err := h.balance.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	content, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", content)
}
