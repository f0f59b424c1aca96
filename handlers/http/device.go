package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	catalog *usecases.CatalogUseCase
}

func NewDeviceHandler(catalog *usecases.CatalogUseCase) *DeviceHandler {
	return &DeviceHandler{catalog: catalog}
}

// CreateDevice handles POST /api/v1/devices
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var device entities.Device
	if err := c.ShouldBindJSON(&device); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.catalog.CreateDevice(ActingUser(c), &device)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Device created successfully",
		"data":    created,
	})
}

// GetDevice handles GET /api/v1/devices/:id
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	device, err := h.catalog.GetDevice(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": device})
}

// ListDevices handles GET /api/v1/devices
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	filter := usecases.DeviceFilter{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		Sort:       c.DefaultQuery("sort", "name"),
		Limit:      intQuery(c, "limit"),
		Offset:     intQuery(c, "offset"),
	}

	devices, err := h.catalog.ListDevices(ActingUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  devices,
		"count": len(devices),
	})
}

// UpdateDevice handles PUT /api/v1/devices/:id
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	var payload entities.Device
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	device, err := h.catalog.UpdateDevice(ActingUser(c), c.Param("id"), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Device updated successfully",
		"data":    device,
	})
}

// DeleteDevice handles DELETE /api/v1/devices/:id
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	if err := h.catalog.DeleteDevice(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device deleted successfully"})
}

// RestoreDevice handles POST /api/v1/devices/:id/restore
func (h *DeviceHandler) RestoreDevice(c *gin.Context) {
	if err := h.catalog.RestoreDevice(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device restored successfully"})
}
