package balance

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/balance")
	group.GET("", h.GetBalance)
	group.POST("/deposit", h.Deposit)
	group.GET("/transactions", h.ListTransactions)
}
