package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// BaseModel is embedded by every business entity. A row with a non-null
// deleted_at is a tombstone: it stays in the table for history but GORM
// excludes it from default queries.
type BaseModel struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Status    string         `gorm:"type:varchar(10);default:ACTIVE" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = StatusActive
	}
	return
}

// TenantScoped narrows a query to the rows one organization may see.
// Entities that do not carry organization_id themselves traverse through
// their owning device.
type TenantScoped interface {
	ScopeByOrganization(tx *gorm.DB, organizationID string) *gorm.DB
}

// TenantOwned entities carry the organization_id column directly; the
// scoping layer stamps it on create, overwriting client-supplied values.
type TenantOwned interface {
	SetOrganization(organizationID string)
}

// DeviceOwned entities belong to a device and inherit its tenant.
type DeviceOwned interface {
	OwningDeviceID() string
}
