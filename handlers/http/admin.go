package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/services"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the superuser maintenance surface: global totals,
// the permission matrix, the audit (all-rows) views and hard deletion.
type AdminHandler struct {
	dashboard *services.DashboardService
	matrix    *usecases.PermissionMatrix
	catalog   *usecases.CatalogUseCase
}

func NewAdminHandler(dashboard *services.DashboardService, matrix *usecases.PermissionMatrix, catalog *usecases.CatalogUseCase) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, matrix: matrix, catalog: catalog}
}

// GetAdminDashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) GetAdminDashboard(c *gin.Context) {
	summary, err := h.dashboard.AdminSummary()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// ListGrants handles GET /api/v1/admin/permissions
func (h *AdminHandler) ListGrants(c *gin.Context) {
	grants, err := h.matrix.ListGrants()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  grants,
		"count": len(grants),
	})
}

// SetGrant handles PUT /api/v1/admin/permissions
func (h *AdminHandler) SetGrant(c *gin.Context) {
	var input usecases.GrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	grant, err := h.matrix.SetGrant(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Permission updated successfully",
		"data":    grant,
	})
}

// AuditDevices handles GET /api/v1/admin/audit/devices; the only view
// that includes tombstoned rows.
func (h *AdminHandler) AuditDevices(c *gin.Context) {
	devices, err := usecases.ScopedListAll[entities.Device](h.catalog.Scope(), ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  devices,
		"count": len(devices),
	})
}

// HardDeleteDevice handles DELETE /api/v1/admin/devices/:id. Permanent,
// cascades to sensors, measurements and alerts.
func (h *AdminHandler) HardDeleteDevice(c *gin.Context) {
	if err := h.catalog.HardDeleteDevice(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device permanently deleted"})
}

// GetCacheStats handles GET /api/v1/admin/cache
func (h *AdminHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.dashboard.Cache().Stats()})
}

// ClearCache handles DELETE /api/v1/admin/cache
func (h *AdminHandler) ClearCache(c *gin.Context) {
	h.dashboard.Cache().Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}
