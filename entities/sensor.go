package entities

import "gorm.io/gorm"

type Sensor struct {
	BaseModel
	DeviceID string  `gorm:"type:varchar(36);not null;index" json:"device_id"`
	Device   *Device `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE" json:"device,omitempty"`
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	Type     string  `gorm:"type:varchar(50)" json:"type"`
	Unit     string  `gorm:"type:varchar(20)" json:"unit"`
}

// Sensors have no organization column; visibility follows the owning device.
func (Sensor) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Joins("JOIN devices ON devices.id = sensors.device_id").
		Where("devices.organization_id = ?", organizationID)
}

func (s *Sensor) OwningDeviceID() string { return s.DeviceID }
