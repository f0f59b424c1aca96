package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type SensorHandler struct {
	catalog *usecases.CatalogUseCase
}

func NewSensorHandler(catalog *usecases.CatalogUseCase) *SensorHandler {
	return &SensorHandler{catalog: catalog}
}

// CreateSensor handles POST /api/v1/sensors
func (h *SensorHandler) CreateSensor(c *gin.Context) {
	var sensor entities.Sensor
	if err := c.ShouldBindJSON(&sensor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.catalog.CreateSensor(ActingUser(c), &sensor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Sensor created successfully",
		"data":    created,
	})
}

// ListSensors handles GET /api/v1/sensors; ?device=<id> narrows to one
// device.
func (h *SensorHandler) ListSensors(c *gin.Context) {
	sensors, err := h.catalog.ListSensors(ActingUser(c), c.Query("device"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  sensors,
		"count": len(sensors),
	})
}

// GetSensor handles GET /api/v1/sensors/:id
func (h *SensorHandler) GetSensor(c *gin.Context) {
	sensor, err := h.catalog.GetSensor(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sensor})
}

// UpdateSensor handles PUT /api/v1/sensors/:id
func (h *SensorHandler) UpdateSensor(c *gin.Context) {
	var payload entities.Sensor
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sensor, err := h.catalog.UpdateSensor(ActingUser(c), c.Param("id"), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sensor updated successfully",
		"data":    sensor,
	})
}

// DeleteSensor handles DELETE /api/v1/sensors/:id
func (h *SensorHandler) DeleteSensor(c *gin.Context) {
	if err := h.catalog.DeleteSensor(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor deleted successfully"})
}

// RestoreSensor handles POST /api/v1/sensors/:id/restore
func (h *SensorHandler) RestoreSensor(c *gin.Context) {
	if err := h.catalog.RestoreSensor(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor restored successfully"})
}
