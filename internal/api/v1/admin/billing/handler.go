package billing

import (
	"net/http"

	"utilibill-backend/internal/api/v1/common/apierr"
	"utilibill-backend/internal/api/v1/payments"
	"utilibill-backend/internal/api/v1/readings"
	"utilibill-backend/internal/api/v1/receipts"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	readings *services.ReadingService
	payments *services.PaymentService
	receipts *services.ReceiptService
}

func NewHandler(r *services.ReadingService, p *services.PaymentService, rc *services.ReceiptService) *Handler {
	return &Handler{readings: r, payments: p, receipts: rc}
}

// ListReadings godoc
// @Summary List meter readings across all users. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]readings.ReadingResponse}
// @Router /admin/readings [get]
func (h *Handler) ListReadings(c *gin.Context) {
	list, err := h.readings.AllReadings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]readings.ReadingResponse, 0, len(list))
	for _, r := range list {
		response = append(response, readings.ToReadingResponse(r))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Readings retrieved successfully", response))
}

// ListPayments godoc
// @Summary List payments across all users. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]payments.PaymentResponse}
// @Router /admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	list, err := h.payments.AllPayments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]payments.PaymentResponse, 0, len(list))
	for _, p := range list {
		response = append(response, payments.ToPaymentResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payments retrieved successfully", response))
}

// GenerateReceipts godoc
// @Summary Generate receipts for a billing period. Admin only.
// @Description With user_id generates a single receipt; without it runs
// a bulk pass over every user that has readings for the period.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body GenerateRequest true "Generation target"
// @Success 200 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/receipts/generate [post]
func (h *Handler) GenerateReceipts(c *gin.Context) {
	var req GenerateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.UserID != nil {
		receipt, err := h.receipts.Generate(*req.UserID, req.Period)
		if err != nil {
			c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Receipt generated successfully", receipts.ToReceiptResponse(*receipt)))
		return
	}

	generated, skipped, err := h.receipts.GenerateForAll(req.Period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	zap.L().Info("Bulk receipt generation finished",
		zap.Time("period", req.Period),
		zap.Int("generated", generated),
		zap.Int("skipped", skipped))

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Receipts generated successfully", GenerateAllResponse{
		Generated: generated,
		Skipped:   skipped,
	}))
}
