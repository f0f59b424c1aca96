package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module codes seeded at bootstrap. The matrix is data: new modules are
// rows, not code changes.
const (
	ModuleDispositivos = "dispositivos"
	ModuleUsuarios     = "usuarios"
)

// Permission actions understood by the matrix.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// Module is a named functional area, the unit of permission granularity.
type Module struct {
	ID   string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Icon string `gorm:"type:varchar(50)" json:"icon"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// Role is a named bundle of per-module grants, attached to users through
// the user_roles join table.
type Role struct {
	ID   string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// RoleModulePermission grants a role four independent action flags on one
// module. Absent row means deny; flags default to false.
type RoleModulePermission struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RoleID    string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_role_module" json:"role_id"`
	Role      *Role   `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
	ModuleID  string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_role_module" json:"module_id"`
	Module    *Module `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
	CanView   bool    `gorm:"default:false" json:"can_view"`
	CanAdd    bool    `gorm:"default:false" json:"can_add"`
	CanChange bool    `gorm:"default:false" json:"can_change"`
	CanDelete bool    `gorm:"default:false" json:"can_delete"`
}

func (p *RoleModulePermission) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// Grants reports whether the row allows the given action.
func (p *RoleModulePermission) Grants(action string) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionAdd:
		return p.CanAdd
	case ActionChange:
		return p.CanChange
	case ActionDelete:
		return p.CanDelete
	}
	return false
}
