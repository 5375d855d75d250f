package receipts

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/receipts")
	group.GET("", h.ListReceipts)
	group.GET("/:id", h.GetReceipt)
	group.GET("/:id/compare", h.CompareReceipt)
	group.POST("/:id/verify", h.VerifyReceipt)
	group.POST("/:id/pay", h.PayReceipt)
}
