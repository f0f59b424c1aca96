package httpHandler

import (
	"net/http"

	"monitoreo-server/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exporter *services.ExportService
}

func NewExportHandler(exporter *services.ExportService) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// ExportMeasurements handles GET /api/v1/export/measurements
func (h *ExportHandler) ExportMeasurements(c *gin.Context) {
	workbook, err := h.exporter.ExportMeasurements(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=measurements.xlsx")
	c.Data(http.StatusOK, xlsxContentType, workbook)
}

// ExportDevices handles GET /api/v1/export/devices
func (h *ExportHandler) ExportDevices(c *gin.Context) {
	workbook, err := h.exporter.ExportDevices(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=devices.xlsx")
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
