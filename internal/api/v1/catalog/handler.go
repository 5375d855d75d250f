package catalog

import (
	"net/http"

	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *services.CatalogService
}

func NewHandler(catalog *services.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// ListServices godoc
// @Summary List active utility services
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]ServiceResponse}
// @Router /services [get]
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.catalog.ActiveServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		response = append(response, ToServiceResponse(s))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Services retrieved successfully", response))
}
