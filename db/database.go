package db

import (
	"monitoreo-server/entities"

	"gorm.io/gorm"
)

type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

// Models lists every persisted type, in FK dependency order, for migration.
func Models() []any {
	return []any{
		&entities.Organization{},
		&entities.Category{},
		&entities.Zone{},
		&entities.Device{},
		&entities.Sensor{},
		&entities.Measurement{},
		&entities.Alert{},
		&entities.User{},
		&entities.UserProfile{},
		&entities.Module{},
		&entities.Role{},
		&entities.RoleModulePermission{},
	}
}
