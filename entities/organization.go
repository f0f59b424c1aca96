package entities

import "gorm.io/gorm"

// Organization is the tenant root: every scoped entity belongs to exactly
// one organization, directly or through its device.
type Organization struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Email string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
}

func (Organization) ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB {
	return tx.Where("organizations.id = ?", organizationID)
}
