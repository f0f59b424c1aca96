package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	catalog *usecases.CatalogUseCase
}

func NewAlertHandler(catalog *usecases.CatalogUseCase) *AlertHandler {
	return &AlertHandler{catalog: catalog}
}

// CreateAlert handles POST /api/v1/alerts
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var alert entities.Alert
	if err := c.ShouldBindJSON(&alert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.catalog.CreateAlert(ActingUser(c), &alert)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Alert created successfully",
		"data":    created,
	})
}

// ListAlerts handles GET /api/v1/alerts; ?device=<id> narrows to one
// device.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.catalog.ListAlerts(ActingUser(c), c.Query("device"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  alerts,
		"count": len(alerts),
	})
}

// GetAlert handles GET /api/v1/alerts/:id
func (h *AlertHandler) GetAlert(c *gin.Context) {
	alert, err := h.catalog.GetAlert(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alert})
}

type MarkReadRequest struct {
	Read *bool `json:"read" binding:"required"`
}

// MarkRead handles PUT /api/v1/alerts/:id/read
func (h *AlertHandler) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	alert, err := h.catalog.MarkAlertRead(ActingUser(c), c.Param("id"), *req.Read)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alert})
}

// DeleteAlert handles DELETE /api/v1/alerts/:id
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	if err := h.catalog.DeleteAlert(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert deleted successfully"})
}

// RestoreAlert handles POST /api/v1/alerts/:id/restore
func (h *AlertHandler) RestoreAlert(c *gin.Context) {
	if err := h.catalog.RestoreAlert(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert restored successfully"})
}
