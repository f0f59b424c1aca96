package usecases

import (
	"strings"
	"time"

	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogUseCase covers the tenant-scoped CRUD over categories, zones,
// devices and their sensors, measurements and alerts. Authorization is the
// caller's concern; everything here already runs inside the tenant scope.
type CatalogUseCase struct {
	db    db.Database
	scope *TenantScope
}

func NewCatalogUseCase(database db.Database, scope *TenantScope) *CatalogUseCase {
	return &CatalogUseCase{db: database, scope: scope}
}

func (uc *CatalogUseCase) Scope() *TenantScope { return uc.scope }

// ============= Categories =============

func (uc *CatalogUseCase) CreateCategory(user *entities.User, category *entities.Category) (*entities.Category, error) {
	if category.Name == "" {
		return nil, validationErrorf("category name is required")
	}
	return ScopedCreate(uc.scope, user, category)
}

func (uc *CatalogUseCase) ListCategories(user *entities.User) ([]entities.Category, error) {
	return ScopedList[entities.Category](uc.scope, user)
}

func (uc *CatalogUseCase) GetCategory(user *entities.User, id string) (*entities.Category, error) {
	return ScopedGet[entities.Category](uc.scope, user, id)
}

func (uc *CatalogUseCase) UpdateCategory(user *entities.User, id string, payload *entities.Category) (*entities.Category, error) {
	return ScopedUpdate(uc.scope, user, id, func(existing *entities.Category) {
		if payload.Name != "" {
			existing.Name = payload.Name
		}
		if payload.Description != "" {
			existing.Description = payload.Description
		}
		if payload.Status != "" {
			existing.Status = payload.Status
		}
	})
}

// DeleteCategory tombstones the category and, in the same transaction, its
// live devices. History under those devices stays reachable through the
// unfiltered view.
func (uc *CatalogUseCase) DeleteCategory(user *entities.User, id string) error {
	return deleteWithDeviceCascade[entities.Category](uc, user, id, "category_id")
}

func (uc *CatalogUseCase) RestoreCategory(user *entities.User, id string) error {
	return ScopedRestore[entities.Category](uc.scope, user, id)
}

// ============= Zones =============

func (uc *CatalogUseCase) CreateZone(user *entities.User, zone *entities.Zone) (*entities.Zone, error) {
	if zone.Name == "" {
		return nil, validationErrorf("zone name is required")
	}
	return ScopedCreate(uc.scope, user, zone)
}

func (uc *CatalogUseCase) ListZones(user *entities.User) ([]entities.Zone, error) {
	return ScopedList[entities.Zone](uc.scope, user)
}

func (uc *CatalogUseCase) GetZone(user *entities.User, id string) (*entities.Zone, error) {
	return ScopedGet[entities.Zone](uc.scope, user, id)
}

func (uc *CatalogUseCase) UpdateZone(user *entities.User, id string, payload *entities.Zone) (*entities.Zone, error) {
	return ScopedUpdate(uc.scope, user, id, func(existing *entities.Zone) {
		if payload.Name != "" {
			existing.Name = payload.Name
		}
		if payload.Description != "" {
			existing.Description = payload.Description
		}
		if payload.Status != "" {
			existing.Status = payload.Status
		}
	})
}

func (uc *CatalogUseCase) DeleteZone(user *entities.User, id string) error {
	return deleteWithDeviceCascade[entities.Zone](uc, user, id, "zone_id")
}

func (uc *CatalogUseCase) RestoreZone(user *entities.User, id string) error {
	return ScopedRestore[entities.Zone](uc.scope, user, id)
}

// ============= Devices =============

// DeviceFilter narrows device listings; Sort must be one of the
// whitelisted columns.
type DeviceFilter struct {
	CategoryID string
	Search     string
	Sort       string
	Limit      int
	Offset     int
}

var deviceSortColumns = map[string]string{
	"name":        "devices.name",
	"-name":       "devices.name DESC",
	"reference":   "devices.reference",
	"-reference":  "devices.reference DESC",
	"created_at":  "devices.created_at",
	"-created_at": "devices.created_at DESC",
}

func (f DeviceFilter) conditions() []repositories.Condition {
	var conds []repositories.Condition
	if f.CategoryID != "" {
		categoryID := f.CategoryID
		conds = append(conds, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("devices.category_id = ?", categoryID)
		})
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("LOWER(devices.name) LIKE ? OR LOWER(devices.reference) LIKE ?", pattern, pattern)
		})
	}
	if column, ok := deviceSortColumns[f.Sort]; ok {
		conds = append(conds, func(tx *gorm.DB) *gorm.DB {
			return tx.Order(column)
		})
	}
	return append(conds, paginate(f.Limit, f.Offset))
}

func (uc *CatalogUseCase) CreateDevice(user *entities.User, device *entities.Device) (*entities.Device, error) {
	if device.Name == "" {
		return nil, validationErrorf("device name is required")
	}
	if device.CategoryID == "" {
		return nil, validationErrorf("category_id is required")
	}
	if device.ZoneID == "" {
		return nil, validationErrorf("zone_id is required")
	}
	// Referenced taxonomy nodes must be visible under the same scope.
	if _, err := ScopedGet[entities.Category](uc.scope, user, device.CategoryID); err != nil {
		return nil, validationErrorf("unknown category")
	}
	if _, err := ScopedGet[entities.Zone](uc.scope, user, device.ZoneID); err != nil {
		return nil, validationErrorf("unknown zone")
	}
	return ScopedCreate(uc.scope, user, device)
}

func (uc *CatalogUseCase) ListDevices(user *entities.User, filter DeviceFilter) ([]entities.Device, error) {
	return ScopedList[entities.Device](uc.scope, user, filter.conditions()...)
}

func (uc *CatalogUseCase) GetDevice(user *entities.User, id string) (*entities.Device, error) {
	return ScopedGet[entities.Device](uc.scope, user, id)
}

func (uc *CatalogUseCase) UpdateDevice(user *entities.User, id string, payload *entities.Device) (*entities.Device, error) {
	// Re-pointed taxonomy nodes get the same visibility check as on create;
	// another tenant's category or zone is as good as a missing one.
	if payload.CategoryID != "" {
		if _, err := ScopedGet[entities.Category](uc.scope, user, payload.CategoryID); err != nil {
			return nil, validationErrorf("unknown category")
		}
	}
	if payload.ZoneID != "" {
		if _, err := ScopedGet[entities.Zone](uc.scope, user, payload.ZoneID); err != nil {
			return nil, validationErrorf("unknown zone")
		}
	}
	return ScopedUpdate(uc.scope, user, id, func(existing *entities.Device) {
		if payload.Name != "" {
			existing.Name = payload.Name
		}
		if payload.Reference != "" {
			existing.Reference = payload.Reference
		}
		if payload.CategoryID != "" {
			existing.CategoryID = payload.CategoryID
		}
		if payload.ZoneID != "" {
			existing.ZoneID = payload.ZoneID
		}
		if payload.Status != "" {
			existing.Status = payload.Status
		}
	})
}

func (uc *CatalogUseCase) DeleteDevice(user *entities.User, id string) error {
	return ScopedDelete[entities.Device](uc.scope, user, id)
}

func (uc *CatalogUseCase) RestoreDevice(user *entities.User, id string) error {
	return ScopedRestore[entities.Device](uc.scope, user, id)
}

func (uc *CatalogUseCase) HardDeleteDevice(user *entities.User, id string) error {
	return ScopedHardDelete[entities.Device](uc.scope, user, id)
}

// ============= Sensors =============

func (uc *CatalogUseCase) CreateSensor(user *entities.User, sensor *entities.Sensor) (*entities.Sensor, error) {
	if sensor.Name == "" {
		return nil, validationErrorf("sensor name is required")
	}
	return ScopedCreate(uc.scope, user, sensor)
}

func (uc *CatalogUseCase) ListSensors(user *entities.User, deviceID string) ([]entities.Sensor, error) {
	return ScopedList[entities.Sensor](uc.scope, user, byDevice[entities.Sensor]("sensors", deviceID)...)
}

func (uc *CatalogUseCase) GetSensor(user *entities.User, id string) (*entities.Sensor, error) {
	return ScopedGet[entities.Sensor](uc.scope, user, id)
}

func (uc *CatalogUseCase) UpdateSensor(user *entities.User, id string, payload *entities.Sensor) (*entities.Sensor, error) {
	return ScopedUpdate(uc.scope, user, id, func(existing *entities.Sensor) {
		if payload.Name != "" {
			existing.Name = payload.Name
		}
		if payload.Type != "" {
			existing.Type = payload.Type
		}
		if payload.Unit != "" {
			existing.Unit = payload.Unit
		}
		if payload.Status != "" {
			existing.Status = payload.Status
		}
	})
}

func (uc *CatalogUseCase) DeleteSensor(user *entities.User, id string) error {
	return ScopedDelete[entities.Sensor](uc.scope, user, id)
}

func (uc *CatalogUseCase) RestoreSensor(user *entities.User, id string) error {
	return ScopedRestore[entities.Sensor](uc.scope, user, id)
}

// ============= Measurements =============

// MeasurementFilter narrows measurement listings.
type MeasurementFilter struct {
	DeviceID string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

var measurementSortColumns = map[string]string{
	"date":        "measurements.date",
	"-date":       "measurements.date DESC",
	"value":       "measurements.value",
	"-value":      "measurements.value DESC",
	"created_at":  "measurements.created_at",
	"-created_at": "measurements.created_at DESC",
}

func (f MeasurementFilter) conditions() []repositories.Condition {
	var conds []repositories.Condition
	if f.DeviceID != "" {
		deviceID := f.DeviceID
		conds = append(conds, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("measurements.device_id = ?", deviceID)
		})
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("LOWER(measurements.unit) LIKE ?", pattern)
		})
	}
	if column, ok := measurementSortColumns[f.Sort]; ok {
		conds = append(conds, func(tx *gorm.DB) *gorm.DB {
			return tx.Order(column)
		})
	}
	return append(conds, paginate(f.Limit, f.Offset))
}

func (uc *CatalogUseCase) CreateMeasurement(user *entities.User, measurement *entities.Measurement) (*entities.Measurement, error) {
	return ScopedCreate(uc.scope, user, measurement)
}

func (uc *CatalogUseCase) ListMeasurements(user *entities.User, filter MeasurementFilter) ([]entities.Measurement, error) {
	return ScopedList[entities.Measurement](uc.scope, user, filter.conditions()...)
}

func (uc *CatalogUseCase) GetMeasurement(user *entities.User, id string) (*entities.Measurement, error) {
	return ScopedGet[entities.Measurement](uc.scope, user, id)
}

// MeasurementUpdate carries the mutable measurement fields. Value is a
// pointer so a zero reading is distinguishable from an absent one.
type MeasurementUpdate struct {
	Value *decimal.Decimal `json:"value"`
	Unit  string           `json:"unit"`
	Date  *time.Time       `json:"date"`
}

func (uc *CatalogUseCase) UpdateMeasurement(user *entities.User, id string, payload *MeasurementUpdate) (*entities.Measurement, error) {
	return ScopedUpdate(uc.scope, user, id, func(existing *entities.Measurement) {
		if payload.Value != nil {
			existing.Value = *payload.Value
		}
		if payload.Unit != "" {
			existing.Unit = payload.Unit
		}
		if payload.Date != nil {
			existing.Date = *payload.Date
		}
	})
}

func (uc *CatalogUseCase) DeleteMeasurement(user *entities.User, id string) error {
	return ScopedDelete[entities.Measurement](uc.scope, user, id)
}

func (uc *CatalogUseCase) RestoreMeasurement(user *entities.User, id string) error {
	return ScopedRestore[entities.Measurement](uc.scope, user, id)
}

// ============= Alerts =============

func (uc *CatalogUseCase) CreateAlert(user *entities.User, alert *entities.Alert) (*entities.Alert, error) {
	if alert.Message == "" {
		return nil, validationErrorf("alert message is required")
	}
	switch alert.Level {
	case "", entities.AlertLevelGrave, entities.AlertLevelAlta, entities.AlertLevelMedia:
	default:
		return nil, validationErrorf("unknown alert level %q", alert.Level)
	}
	return ScopedCreate(uc.scope, user, alert)
}

func (uc *CatalogUseCase) ListAlerts(user *entities.User, deviceID string) ([]entities.Alert, error) {
	return ScopedList[entities.Alert](uc.scope, user, byDevice[entities.Alert]("alerts", deviceID)...)
}

func (uc *CatalogUseCase) GetAlert(user *entities.User, id string) (*entities.Alert, error) {
	return ScopedGet[entities.Alert](uc.scope, user, id)
}

// MarkAlertRead flips the read flag on a visible alert.
func (uc *CatalogUseCase) MarkAlertRead(user *entities.User, id string, read bool) (*entities.Alert, error) {
	return ScopedUpdate(uc.scope, user, id, func(existing *entities.Alert) {
		existing.Read = read
	})
}

func (uc *CatalogUseCase) DeleteAlert(user *entities.User, id string) error {
	return ScopedDelete[entities.Alert](uc.scope, user, id)
}

func (uc *CatalogUseCase) RestoreAlert(user *entities.User, id string) error {
	return ScopedRestore[entities.Alert](uc.scope, user, id)
}

// ============= helpers =============

const maxPageSize = 500

// paginate caps and applies limit/offset; limit <= 0 means the default
// page size.
func paginate(limit, offset int) repositories.Condition {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit).Offset(offset)
	}
}

func byDevice[T entities.TenantScoped](table, deviceID string) []repositories.Condition {
	if deviceID == "" {
		return nil
	}
	return []repositories.Condition{func(tx *gorm.DB) *gorm.DB {
		return tx.Where(table+".device_id = ?", deviceID)
	}}
}

// deleteWithDeviceCascade tombstones a taxonomy node and the live devices
// referencing it through fkColumn, atomically. GORM's default scope keeps
// the device update from touching rows that are already tombstoned.
func deleteWithDeviceCascade[T entities.TenantScoped](uc *CatalogUseCase, user *entities.User, id, fkColumn string) error {
	cond, ok, err := scopeCondition[T](uc.scope, user)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return uc.db.GetDB().Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewLifecycleRepository[T](uc.db).WithTx(tx)
		if _, err := repo.GetByIDAny(id, cond); err != nil {
			return translate(err)
		}
		if err := repo.Delete(id); err != nil {
			return err
		}
		return tx.Model(&entities.Device{}).
			Where(fkColumn+" = ?", id).
			Update("deleted_at", tx.NowFunc()).Error
	})
}
