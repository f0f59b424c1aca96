package entities

import "gorm.io/gorm"

type Zone struct {
	BaseModel
	Name           string        `gorm:"type:varchar(100);not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description"`
	OrganizationID *string       `gorm:"type:varchar(36);index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Zone) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Where("zones.organization_id = ?", organizationID)
}

func (z *Zone) SetOrganization(organizationID string) {
	z.OrganizationID = &organizationID
}
