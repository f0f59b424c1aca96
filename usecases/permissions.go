package usecases

import (
	"monitoreo-server/entities"
	"monitoreo-server/repositories"
)

// PermissionMatrix is the single authorization source: (role × module)
// rows with four action flags. Permissions are additive across a user's
// roles and deny-by-default when no row exists for the pair.
type PermissionMatrix struct {
	users repositories.UserRepository
	rbac  repositories.RBACRepository
}

func NewPermissionMatrix(users repositories.UserRepository, rbac repositories.RBACRepository) *PermissionMatrix {
	return &PermissionMatrix{users: users, rbac: rbac}
}

// Authorize reports whether the acting user may perform action on the
// module. Superusers are always allowed.
func (m *PermissionMatrix) Authorize(user *entities.User, moduleCode, action string) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.IsSuperuser {
		return true, nil
	}
	roles, err := m.users.GetRoles(user.ID)
	if err != nil {
		return false, err
	}
	if len(roles) == 0 {
		return false, nil
	}
	roleIDs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleIDs = append(roleIDs, role.ID)
	}
	perms, err := m.rbac.GetPermissions(roleIDs, moduleCode)
	if err != nil {
		return false, err
	}
	for _, perm := range perms {
		if perm.Grants(action) {
			return true, nil
		}
	}
	return false, nil
}

// RequireAuthorization gates mutating entry points before they reach the
// scoping layer.
func (m *PermissionMatrix) RequireAuthorization(user *entities.User, moduleCode, action string) error {
	allowed, err := m.Authorize(user, moduleCode, action)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrPermissionDenied
	}
	return nil
}

// GrantInput carries one matrix row for admin updates.
type GrantInput struct {
	RoleName   string `json:"role"`
	ModuleCode string `json:"module"`
	CanView    bool   `json:"can_view"`
	CanAdd     bool   `json:"can_add"`
	CanChange  bool   `json:"can_change"`
	CanDelete  bool   `json:"can_delete"`
}

// SetGrant inserts or overwrites the (role, module) row. The matrix is
// data: new roles and modules are rows, not code changes.
func (m *PermissionMatrix) SetGrant(input GrantInput) (*entities.RoleModulePermission, error) {
	role, err := m.rbac.GetRoleByName(input.RoleName)
	if err != nil {
		return nil, translate(err)
	}
	module, err := m.rbac.GetModuleByCode(input.ModuleCode)
	if err != nil {
		return nil, translate(err)
	}
	perm := &entities.RoleModulePermission{
		RoleID:    role.ID,
		ModuleID:  module.ID,
		CanView:   input.CanView,
		CanAdd:    input.CanAdd,
		CanChange: input.CanChange,
		CanDelete: input.CanDelete,
	}
	if err := m.rbac.UpsertPermission(perm); err != nil {
		return nil, translate(err)
	}
	return perm, nil
}

// ListGrants returns the whole matrix for the admin screen.
func (m *PermissionMatrix) ListGrants() ([]entities.RoleModulePermission, error) {
	return m.rbac.ListPermissions()
}
