package entities

import "gorm.io/gorm"

// Alert severities, descending: GRAVE > ALTA > MEDIA.
const (
	AlertLevelGrave = "GRAVE"
	AlertLevelAlta  = "ALTA"
	AlertLevelMedia = "MEDIA"
)

type Alert struct {
	BaseModel
	DeviceID string  `gorm:"type:varchar(36);not null;index" json:"device_id"`
	Device   *Device `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE" json:"device,omitempty"`
	Message  string  `gorm:"type:varchar(250);not null" json:"message"`
	Level    string  `gorm:"type:varchar(10);default:MEDIA" json:"level"`
	Read     bool    `gorm:"default:false" json:"read"`
}

func (Alert) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Joins("JOIN devices ON devices.id = alerts.device_id").
		Where("devices.organization_id = ?", organizationID)
}

func (a *Alert) OwningDeviceID() string { return a.DeviceID }

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.Level == "" {
		a.Level = AlertLevelMedia
	}
	return a.BaseModel.BeforeCreate(tx)
}
