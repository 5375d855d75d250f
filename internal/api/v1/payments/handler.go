package payments

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
	payments *services.PaymentService
	users    *services.UserService
}

func NewHandler(payments *services.PaymentService, users *services.UserService) *Handler {
	return &Handler{payments: payments, users: users}
}

// CreatePayment godoc
// @Summary Create a pending payment
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreatePaymentRequest true "Payment"
// @Success 200 {object} utils.Response{data=PaymentResponse}
// @Failure 400 {object} utils.Response
// @Router /payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req CreatePaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	payment, err := h.payments.CreatePayment(user.ID, req.ServiceID, req.Amount, req.Period, req.ReceiptID)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment created successfully", ToPaymentResponse(*payment)))
}

// ListPayments godoc
// @Summary List own payments, newest period first
// @Tags payments
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]PaymentResponse}
// @Router /payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	list, err := h.payments.UserPayments(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		response = append(response, ToPaymentResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payments retrieved successfully", response))
}

// ProcessPayment godoc
// @Summary Settle a pending payment from the balance
// @Tags payments
// @Produce json
// @Security Bearer
// @Param id path int true "Payment ID"
// @Success 200 {object} utils.Response{data=PaymentResponse}
// @Failure 402 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /payments/{id}/process [post]
func (h *Handler) ProcessPayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid payment id"))
		return
	}

	payment, err := h.payments.Process(uint(id), &user)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}
	h.users.InvalidateCache(payment.UserID)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment processed successfully", ToPaymentResponse(*payment)))
}
