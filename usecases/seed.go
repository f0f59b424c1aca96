package usecases

import (
	"monitoreo-server/entities"
	"monitoreo-server/repositories"
)

// Baseline role names. Initial data only: the matrix accepts new roles and
// grants at runtime without code changes.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

type seedGrant struct {
	role   string
	module string
	view   bool
	add    bool
	change bool
	del    bool
}

var baselineGrants = []seedGrant{
	{RoleAdmin, "dispositivos", true, true, true, true},
	{RoleAdmin, "usuarios", true, true, true, true},
	{RoleManager, "dispositivos", true, true, true, false},
	{RoleManager, "usuarios", true, false, false, false},
	{RoleUser, "dispositivos", true, false, false, false},
	{RoleUser, "usuarios", false, false, false, false},
}

var baselineModules = []struct{ code, name string }{
	{"dispositivos", "Dispositivos"},
	{"usuarios", "Usuarios"},
}

// SeedRolesAndModules creates the baseline modules, roles and permission
// rows. Safe to run repeatedly; existing rows are reused or overwritten.
func SeedRolesAndModules(rbac repositories.RBACRepository) error {
	modules := make(map[string]string, len(baselineModules))
	for _, m := range baselineModules {
		module, err := rbac.GetOrCreateModule(m.code, m.name)
		if err != nil {
			return err
		}
		modules[m.code] = module.ID
	}

	roles := make(map[string]string, 3)
	for _, name := range []string{RoleAdmin, RoleManager, RoleUser} {
		role, err := rbac.GetOrCreateRole(name)
		if err != nil {
			return err
		}
		roles[name] = role.ID
	}

	for _, g := range baselineGrants {
		perm := &entities.RoleModulePermission{
			RoleID:    roles[g.role],
			ModuleID:  modules[g.module],
			CanView:   g.view,
			CanAdd:    g.add,
			CanChange: g.change,
			CanDelete: g.del,
		}
		if err := rbac.UpsertPermission(perm); err != nil {
			return err
		}
	}
	return nil
}
