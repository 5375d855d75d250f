package payments

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/payments")
	group.POST("", h.CreatePayment)
	group.GET("", h.ListPayments)
	group.POST("/:id/process", h.ProcessPayment)
}
