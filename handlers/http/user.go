package httpHandler

import (
	"net/http"

	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	directory *usecases.DirectoryUseCase
}

func NewUserHandler(directory *usecases.DirectoryUseCase) *UserHandler {
	return &UserHandler{directory: directory}
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.directory.ListUsers(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  users,
		"count": len(users),
	})
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.directory.GetUser(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AssignRole handles POST /api/v1/users/:id/roles
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.directory.AssignRole(ActingUser(c), c.Param("id"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role assigned successfully"})
}
