package readings

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/readings")
	group.POST("", h.SubmitReading)
	group.GET("", h.ListReadings)
}
