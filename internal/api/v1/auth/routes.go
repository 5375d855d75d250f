package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the unauthenticated endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/auth")
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
}

// RegisterProtectedRoutes mounts the endpoints that require a valid
// token.
func RegisterProtectedRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/auth")
	group.GET("/user", h.CurrentUser)
	group.POST("/logout", h.Logout)
}
