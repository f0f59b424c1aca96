package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Measurement struct {
	BaseModel
	DeviceID string          `gorm:"type:varchar(36);not null;index" json:"device_id"`
	Device   *Device         `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE" json:"device,omitempty"`
	Value    decimal.Decimal `gorm:"type:decimal(12,3)" json:"value"`
	Unit     string          `gorm:"type:varchar(20)" json:"unit"`
	// Date is the event time of the reading, distinct from CreatedAt.
	Date time.Time `gorm:"index" json:"date"`
}

func (Measurement) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Joins("JOIN devices ON devices.id = measurements.device_id").
		Where("devices.organization_id = ?", organizationID)
}

func (m *Measurement) OwningDeviceID() string { return m.DeviceID }

func (m *Measurement) BeforeCreate(tx *gorm.DB) error {
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	return m.BaseModel.BeforeCreate(tx)
}
