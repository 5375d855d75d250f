package receipts

import (
	"net/http"
	"strconv"

	"utilibill-backend/internal/api/v1/common/apierr"
	"utilibill-backend/internal/middleware"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	receipts *services.ReceiptService
	balance  *services.BalanceService
	users    *services.UserService
}

func NewHandler(receipts *services.ReceiptService, balance *services.BalanceService, users *services.UserService) *Handler {
	return &Handler{receipts: receipts, balance: balance, users: users}
}

func receiptID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid receipt id"))
		return 0, false
	}
	return uint(id), true
}

// ListReceipts godoc
// @Summary List own receipts with items, newest period first
// @Tags receipts
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]ReceiptResponse}
// @Router /receipts [get]
func (h *Handler) ListReceipts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	list, err := h.receipts.UserReceipts(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]ReceiptResponse, 0, len(list))
	for _, r := range list {
		response = append(response, ToReceiptResponse(r))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Receipts retrieved successfully", response))
}

// GetReceipt godoc
// @Summary Get one receipt with its items
// @Tags receipts
// @Produce json
// @Security Bearer
// @Param id path int true "Receipt ID"
// @Success 200 {object} utils.Response{data=ReceiptResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /receipts/{id} [get]
func (h *Handler) GetReceipt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	receipt, err := h.receipts.GetDetails(id, &user)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Receipt retrieved successfully", ToReceiptResponse(*receipt)))
}

// CompareReceipt godoc
// @Summary Compare a receipt with the previous period
// @Tags receipts
// @Produce json
// @Security Bearer
// @Param id path int true "Receipt ID"
// @Success 200 {object} utils.Response{data=services.ComparisonResult}
// @Failure 404 {object} utils.Response
// @Router /receipts/{id}/compare [get]
func (h *Handler) CompareReceipt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	comparison, err := h.receipts.Compare(id, &user)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Comparison computed successfully", comparison))
}

// VerifyReceipt godoc
// @Summary Verify a receipt against current catalog rates
// @Description Recomputes the total at current rates, optionally with
// manually entered meter values, and reports whether it matches the
// stored total within one minor currency unit.
// @Tags receipts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Receipt ID"
// @Param request body VerifyRequest false "Manual readings"
// @Success 200 {object} utils.Response{data=services.VerificationResult}
// @Failure 404 {object} utils.Response
// @Router /receipts/{id}/verify [post]
func (h *Handler) VerifyReceipt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	var req VerifyRequest
	if c.Request.ContentLength > 0 && !utils.BindAndValidate(c, &req) {
		return
	}

	manual := make(map[uint]decimal.Decimal, len(req.ManualReadings))
	for _, r := range req.ManualReadings {
		manual[r.ServiceID] = r.Value
	}

	result, err := h.receipts.Verify(id, &user, manual)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Receipt verified", result))
}

// PayReceipt godoc
// @Summary Pay a receipt from the balance
// @Tags receipts
// @Produce json
// @Security Bearer
// @Param id path int true "Receipt ID"
// @Success 200 {object} utils.Response{data=PayResponse}
// @Failure 402 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /receipts/{id}/pay [post]
func (h *Handler) PayReceipt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	receipt, err := h.receipts.Pay(id, &user)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}
	h.users.InvalidateCache(receipt.UserID)

	newBalance, err := h.balance.GetBalance(receipt.UserID)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Receipt paid successfully", PayResponse{
		Receipt:    ToReceiptResponse(*receipt),
		NewBalance: newBalance,
	}))
}
