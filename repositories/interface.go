package repositories

import "monitoreo-server/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	Update(user *entities.User) error
	CreateProfile(profile *entities.UserProfile) error
	GetProfileByUserID(userID string) (*entities.UserProfile, error)
	UpdateProfile(profile *entities.UserProfile) error
	GetRoles(userID string) ([]entities.Role, error)
	AssignRole(userID, roleName string) error
	CountUsers() (int64, error)
}

type RBACRepository interface {
	GetModuleByCode(code string) (*entities.Module, error)
	GetOrCreateModule(code, name string) (*entities.Module, error)
	ListModules() ([]entities.Module, error)
	GetRoleByName(name string) (*entities.Role, error)
	GetOrCreateRole(name string) (*entities.Role, error)
	ListRoles() ([]entities.Role, error)
	// GetPermissions returns the matrix rows for the given roles on one
	// module; absent rows mean deny.
	GetPermissions(roleIDs []string, moduleCode string) ([]entities.RoleModulePermission, error)
	ListPermissions() ([]entities.RoleModulePermission, error)
	UpsertPermission(perm *entities.RoleModulePermission) error
}
