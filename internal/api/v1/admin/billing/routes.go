package billing

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.GET("/readings", h.ListReadings)
	router.GET("/payments", h.ListPayments)
	router.POST("/receipts/generate", h.GenerateReceipts)
}
