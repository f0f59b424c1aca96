package entities

import "gorm.io/gorm"

type Category struct {
	BaseModel
	Name           string        `gorm:"type:varchar(100);not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description"`
	OrganizationID *string       `gorm:"type:varchar(36);index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Category) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Where("categories.organization_id = ?", organizationID)
}

func (c *Category) SetOrganization(organizationID string) {
	c.OrganizationID = &organizationID
}
