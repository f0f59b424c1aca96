package services

import (
	"bytes"
	"fmt"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var measurementExportHeader = []string{"Device", "Value", "Unit", "Date"}

var deviceExportHeader = []string{"Name", "Category", "Zone", "Reference", "Status"}

// ExportService renders spreadsheet projections of the tenant's data.
// Everything goes through the scoped live view: tombstoned rows never
// reach an export.
type ExportService struct {
	catalog *usecases.CatalogUseCase
}

func NewExportService(catalog *usecases.CatalogUseCase) *ExportService {
	return &ExportService{catalog: catalog}
}

// ExportMeasurements writes the acting user's measurements as an xlsx
// workbook.
func (s *ExportService) ExportMeasurements(user *entities.User) ([]byte, error) {
	measurements, err := usecases.ScopedList[entities.Measurement](s.catalog.Scope(), user,
		func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Device").Order("measurements.date DESC")
		})
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(measurements))
	for _, m := range measurements {
		deviceName := ""
		if m.Device != nil {
			deviceName = m.Device.Name
		}
		value, _ := m.Value.Float64()
		rows = append(rows, []any{
			deviceName,
			value,
			m.Unit,
			m.Date.Format("2006-01-02 15:04:05"),
		})
	}
	return writeWorkbook("Measurements", measurementExportHeader, rows)
}

// ExportDevices writes the acting user's devices as an xlsx workbook.
func (s *ExportService) ExportDevices(user *entities.User) ([]byte, error) {
	devices, err := usecases.ScopedList[entities.Device](s.catalog.Scope(), user,
		func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Category").Preload("Zone")
		})
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(devices))
	for _, d := range devices {
		categoryName, zoneName := "", ""
		if d.Category != nil {
			categoryName = d.Category.Name
		}
		if d.Zone != nil {
			zoneName = d.Zone.Name
		}
		rows = append(rows, []any{d.Name, categoryName, zoneName, d.Reference, d.Status})
	}
	return writeWorkbook("Devices", deviceExportHeader, rows)
}

func writeWorkbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for rowNum, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
