package readings

import (
	"net/http"

	"utilibill-backend/internal/api/v1/common/apierr"
	"utilibill-backend/internal/middleware"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	readings *services.ReadingService
}

func NewHandler(readings *services.ReadingService) *Handler {
	return &Handler{readings: readings}
}

// SubmitReading godoc
// @Summary Submit a meter reading
// @Tags readings
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body SubmitReadingRequest true "Reading"
// @Success 200 {object} utils.Response{data=ReadingResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /readings [post]
func (h *Handler) SubmitReading(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req SubmitReadingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	reading, err := h.readings.SubmitReading(user.ID, req.ServiceID, req.Value, req.Period)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reading submitted successfully", ToReadingResponse(*reading)))
}

// ListReadings godoc
// @Summary List own meter readings
// @Tags readings
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]ReadingResponse}
// @Router /readings [get]
func (h *Handler) ListReadings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	list, err := h.readings.UserReadings(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]ReadingResponse, 0, len(list))
	for _, r := range list {
		response = append(response, ToReadingResponse(r))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Readings retrieved successfully", response))
}
