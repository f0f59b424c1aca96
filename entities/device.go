package entities

import "gorm.io/gorm"

type Device struct {
	BaseModel
	Name           string        `gorm:"type:varchar(100);not null" json:"name"`
	Reference      string        `gorm:"type:varchar(100)" json:"reference"`
	CategoryID     string        `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category       *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	ZoneID         string        `gorm:"type:varchar(36);not null;index" json:"zone_id"`
	Zone           *Zone         `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"zone,omitempty"`
	OrganizationID *string       `gorm:"type:varchar(36);index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Device) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Where("devices.organization_id = ?", organizationID)
}

func (d *Device) SetOrganization(organizationID string) {
	d.OrganizationID = &organizationID
}
