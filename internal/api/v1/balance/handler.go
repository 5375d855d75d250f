package balance

import (
	"net/http"
	"strconv"

	"utilibill-backend/internal/api/v1/common/apierr"
	"utilibill-backend/internal/middleware"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	balance *services.BalanceService
	users   *services.UserService
}

func NewHandler(balance *services.BalanceService, users *services.UserService) *Handler {
	return &Handler{balance: balance, users: users}
}

// GetBalance godoc
// @Summary Get current balance
// @Tags balance
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=BalanceResponse}
// @Failure 401 {object} utils.Response
// @Router /balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	amount, err := h.balance.GetBalance(user.ID)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance retrieved successfully", BalanceResponse{
		UserID:   user.ID,
		Balance:  amount,
		Currency: "RUB",
	}))
}

// Deposit godoc
// @Summary Deposit funds
// @Tags balance
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body DepositRequest true "Deposit"
// @Success 200 {object} utils.Response{data=DepositResponse}
// @Failure 400 {object} utils.Response
// @Router /balance/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req DepositRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	description := req.Description
	if description == "" {
		description = "Balance deposit"
	}

	newBalance, err := h.balance.Deposit(user.ID, req.Amount, description)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}
	h.users.InvalidateCache(user.ID)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance deposited successfully", DepositResponse{
		NewBalance:      newBalance,
		DepositedAmount: req.Amount,
	}))
}

// ListTransactions godoc
// @Summary List own ledger entries, newest first
// @Tags balance
// @Produce json
// @Security Bearer
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} utils.Response{data=[]TransactionResponse}
// @Router /balance/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	transactions, err := h.balance.ListTransactions(user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		response = append(response, toTransactionResponse(t))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", response))
}
