package repositories

import (
	"monitoreo-server/db"
	"monitoreo-server/entities"

	"gorm.io/gorm/clause"
)

type rbacPgRepository struct {
	db db.Database
}

func NewRBACPgRepository(database db.Database) RBACRepository {
	return &rbacPgRepository{db: database}
}

func (r *rbacPgRepository) GetModuleByCode(code string) (*entities.Module, error) {
	var module entities.Module
	err := r.db.GetDB().Where("code = ?", code).First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *rbacPgRepository) GetOrCreateModule(code, name string) (*entities.Module, error) {
	var module entities.Module
	err := r.db.GetDB().Where(entities.Module{Code: code}).
		Attrs(entities.Module{Name: name}).
		FirstOrCreate(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *rbacPgRepository) ListModules() ([]entities.Module, error) {
	var modules []entities.Module
	err := r.db.GetDB().Order("code").Find(&modules).Error
	return modules, err
}

func (r *rbacPgRepository) GetRoleByName(name string) (*entities.Role, error) {
	var role entities.Role
	err := r.db.GetDB().Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *rbacPgRepository) GetOrCreateRole(name string) (*entities.Role, error) {
	var role entities.Role
	err := r.db.GetDB().Where(entities.Role{Name: name}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *rbacPgRepository) ListRoles() ([]entities.Role, error) {
	var roles []entities.Role
	err := r.db.GetDB().Order("name").Find(&roles).Error
	return roles, err
}

func (r *rbacPgRepository) GetPermissions(roleIDs []string, moduleCode string) ([]entities.RoleModulePermission, error) {
	var perms []entities.RoleModulePermission
	if len(roleIDs) == 0 {
		return perms, nil
	}
	err := r.db.GetDB().
		Joins("JOIN modules ON modules.id = role_module_permissions.module_id").
		Where("role_module_permissions.role_id IN ?", roleIDs).
		Where("modules.code = ?", moduleCode).
		Find(&perms).Error
	return perms, err
}

func (r *rbacPgRepository) ListPermissions() ([]entities.RoleModulePermission, error) {
	var perms []entities.RoleModulePermission
	err := r.db.GetDB().Preload("Role").Preload("Module").Find(&perms).Error
	return perms, err
}

// UpsertPermission inserts the (role, module) row or overwrites its four
// flags; the unique index keeps one row per pair.
func (r *rbacPgRepository) UpsertPermission(perm *entities.RoleModulePermission) error {
	return r.db.GetDB().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "role_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"can_view", "can_add", "can_change", "can_delete",
		}),
	}).Create(perm).Error
}
