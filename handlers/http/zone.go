package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type ZoneHandler struct {
	catalog *usecases.CatalogUseCase
}

func NewZoneHandler(catalog *usecases.CatalogUseCase) *ZoneHandler {
	return &ZoneHandler{catalog: catalog}
}

// CreateZone handles POST /api/v1/zones
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	var zone entities.Zone
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.catalog.CreateZone(ActingUser(c), &zone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Zone created successfully",
		"data":    created,
	})
}

// ListZones handles GET /api/v1/zones
func (h *ZoneHandler) ListZones(c *gin.Context) {
	zones, err := h.catalog.ListZones(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  zones,
		"count": len(zones),
	})
}

// GetZone handles GET /api/v1/zones/:id
func (h *ZoneHandler) GetZone(c *gin.Context) {
	zone, err := h.catalog.GetZone(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": zone})
}

// UpdateZone handles PUT /api/v1/zones/:id
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	var payload entities.Zone
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	zone, err := h.catalog.UpdateZone(ActingUser(c), c.Param("id"), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Zone updated successfully",
		"data":    zone,
	})
}

// DeleteZone handles DELETE /api/v1/zones/:id. Live devices in the zone
// are tombstoned with it.
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	if err := h.catalog.DeleteZone(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
}

// RestoreZone handles POST /api/v1/zones/:id/restore
func (h *ZoneHandler) RestoreZone(c *gin.Context) {
	if err := h.catalog.RestoreZone(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zone restored successfully"})
}
