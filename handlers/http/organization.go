package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	directory *usecases.DirectoryUseCase
}

func NewOrganizationHandler(directory *usecases.DirectoryUseCase) *OrganizationHandler {
	return &OrganizationHandler{directory: directory}
}

// GetOrganization handles GET /api/v1/organization
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	org, err := h.directory.GetOrganization(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": org})
}

// UpdateOrganization handles PUT /api/v1/organization
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	var payload entities.Organization
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	org, err := h.directory.UpdateOrganization(ActingUser(c), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Organization updated successfully",
		"data":    org,
	})
}

// ListOrganizations handles GET /api/v1/admin/organizations
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.directory.ListOrganizations(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  orgs,
		"count": len(orgs),
	})
}
