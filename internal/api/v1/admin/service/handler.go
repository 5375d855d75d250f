package service

import (
	"net/http"
	"strconv"

	"utilibill-backend/internal/api/v1/catalog"
	"utilibill-backend/internal/api/v1/common/apierr"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *services.CatalogService
}

func NewHandler(c *services.CatalogService) *Handler {
	return &Handler{catalog: c}
}

// ListServices godoc
// @Summary List the full catalog, active entries first. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]catalog.ServiceResponse}
// @Router /admin/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	list, err := h.catalog.AllServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	response := make([]catalog.ServiceResponse, 0, len(list))
	for _, s := range list {
		response = append(response, catalog.ToServiceResponse(s))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Services retrieved successfully", response))
}

// CreateService godoc
// @Summary Create a utility service. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ServiceRequest true "Service"
// @Success 200 {object} utils.Response{data=catalog.ServiceResponse}
// @Failure 400 {object} utils.Response
// @Router /admin/services [post]
func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	created, err := h.catalog.CreateService(req.Name, req.Description, req.Unit, req.Rate, req.active())
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Service created successfully", catalog.ToServiceResponse(*created)))
}

// UpdateService godoc
// @Summary Update a utility service. Admin only.
// @Description Rate changes apply to future receipt generation only;
// frozen rates on existing receipts are untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param request body ServiceRequest true "Service"
// @Success 200 {object} utils.Response{data=catalog.ServiceResponse}
// @Failure 404 {object} utils.Response
// @Router /admin/services/{id} [put]
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid service id"))
		return
	}

	var req ServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updated, err := h.catalog.UpdateService(uint(id), req.Name, req.Description, req.Unit, req.Rate, req.active())
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Service updated successfully", catalog.ToServiceResponse(*updated)))
}

// DeactivateService godoc
// @Summary Retire a utility service from the catalog. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/services/{id} [delete]
func (h *Handler) DeactivateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid service id"))
		return
	}

	if err := h.catalog.DeactivateService(uint(id)); err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Service deactivated successfully", nil))
}
