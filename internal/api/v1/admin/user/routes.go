package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/users")
	group.GET("", h.ListUsers)
	group.PATCH("/:id", h.UpdateUser)
}
