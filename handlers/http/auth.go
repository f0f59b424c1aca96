package httpHandler

import (
	"net/http"
	"strings"

	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *usecases.AccountUseCase
	sessions *SessionManager
}

func NewAuthHandler(accounts *usecases.AccountUseCase, sessions *SessionManager) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  h.sessions.Create(user.ID),
		UserID: user.ID,
		Email:  user.Email,
	})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req usecases.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.accounts.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"data":    user,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		h.sessions.Revoke(token)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// PasswordReset handles POST /api/v1/auth/password-reset. The response is
// identical for known and unknown accounts.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := h.accounts.RequestPasswordReset(req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Instructions to reset your password have been sent to your email"})
}
