package auth

import (
	"net/http"

	"utilibill-backend/internal/api/v1/common/apierr"
	"utilibill-backend/internal/middleware"
	"utilibill-backend/internal/services"
	"utilibill-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth      *services.AuthService
	users     *services.UserService
	denylist  *services.TokenDenylist
	jwtSecret string
}

func NewHandler(auth *services.AuthService, users *services.UserService, denylist *services.TokenDenylist, jwtSecret string) *Handler {
	return &Handler{auth: auth, users: users, denylist: denylist, jwtSecret: jwtSecret}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.auth.RegisterUser(req.Username, req.Password)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User registered successfully", UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
	}))
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := h.auth.LoginUser(req.Username, req.Password)
	if err != nil {
		c.JSON(apierr.Status(err), utils.NewErrorResponse(apierr.Status(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Login successful", UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
		Token:     token,
	}))
}

// Logout godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	tokenString := c.GetString("token")
	claims, err := utils.ValidateToken(h.jwtSecret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid token"))
		return
	}

	if err := h.denylist.Add(tokenString, utils.TokenRemainingLife(claims)); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out", nil))
}

// CurrentUser godoc
// @Summary Get current user
// @Description Get current user's information, including the live balance
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/user [get]
func (h *Handler) CurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	// Cache-aside lookup; balance mutations invalidate the cache, so
	// this reflects the latest committed balance.
	latest, err := h.users.FindUserByID(user.ID)
	if err == nil {
		user = latest
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
	}))
}
