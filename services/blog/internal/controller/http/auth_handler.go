package http

import (
	"net/http"

	"inkboard/pkg/logger"
	"inkboard/pkg/session"
	"inkboard/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	cookies     session.Cookies
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, cookies session.Cookies, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookies:     cookies,
		logger:      logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Login godoc
// @Summary      Sign in
// @Description  Check credentials, set the session cookies and return a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, token, err := h.authUseCase.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Failed to sign in")
		return
	}

	h.cookies.Set(c, user.Role, token)
	c.JSON(http.StatusOK, LoginResponse{
		Email: user.Email,
		Role:  string(user.Role),
		Token: token,
	})
}

// Logout godoc
// @Summary      Sign out
// @Description  Clear the session cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me godoc
// @Summary      Current user
// @Description  Resolve the bearer token or auth_token cookie to its account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUseCase.GetUser(c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, user)
}
