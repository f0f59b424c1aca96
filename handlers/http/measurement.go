package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type MeasurementHandler struct {
	catalog *usecases.CatalogUseCase
}

func NewMeasurementHandler(catalog *usecases.CatalogUseCase) *MeasurementHandler {
	return &MeasurementHandler{catalog: catalog}
}

// CreateMeasurement handles POST /api/v1/measurements
func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	var measurement entities.Measurement
	if err := c.ShouldBindJSON(&measurement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.catalog.CreateMeasurement(ActingUser(c), &measurement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Measurement created successfully",
		"data":    created,
	})
}

// ListMeasurements handles GET /api/v1/measurements
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	filter := usecases.MeasurementFilter{
		DeviceID: c.Query("device"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "-date"),
		Limit:    intQuery(c, "limit"),
		Offset:   intQuery(c, "offset"),
	}

	measurements, err := h.catalog.ListMeasurements(ActingUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  measurements,
		"count": len(measurements),
	})
}

// GetMeasurement handles GET /api/v1/measurements/:id
func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	measurement, err := h.catalog.GetMeasurement(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": measurement})
}

// UpdateMeasurement handles PUT /api/v1/measurements/:id
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	var payload usecases.MeasurementUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	measurement, err := h.catalog.UpdateMeasurement(ActingUser(c), c.Param("id"), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Measurement updated successfully",
		"data":    measurement,
	})
}

// DeleteMeasurement handles DELETE /api/v1/measurements/:id
func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	if err := h.catalog.DeleteMeasurement(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Measurement deleted successfully"})
}

// RestoreMeasurement handles POST /api/v1/measurements/:id/restore
func (h *MeasurementHandler) RestoreMeasurement(c *gin.Context) {
	if err := h.catalog.RestoreMeasurement(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Measurement restored successfully"})
}
