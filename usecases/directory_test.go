package usecases

import (
	"testing"

	"monitoreo-server/entities"
	"monitoreo-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectory(t *testing.T) (*DirectoryUseCase, *TenantScope, repositories.UserRepository) {
	t.Helper()
	database := openTestDB(t)
	users := repositories.NewUserPgRepository(database)
	scope := NewTenantScope(database, users)
	return NewDirectoryUseCase(database, scope, users), scope, users
}

func TestListUsersScopedToOrganization(t *testing.T) {
	directory, scope, _ := newDirectory(t)

	orgA := createTenant(t, scope.db, "norte")
	orgB := createTenant(t, scope.db, "sur")
	actor := createUser(t, scope.db, "a@norte.cl", orgA.ID, false)
	createUser(t, scope.db, "b@norte.cl", orgA.ID, false)
	createUser(t, scope.db, "c@sur.cl", orgB.ID, false)

	users, err := directory.ListUsers(actor)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@norte.cl", users[0].Email)
	assert.Equal(t, "b@norte.cl", users[1].Email)

	root := createUser(t, scope.db, "root@test.cl", "", true)
	all, err := directory.ListUsers(root)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// No organization, no directory.
	orphan := createUser(t, scope.db, "orphan@test.cl", "", false)
	none, err := directory.ListUsers(orphan)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetUserCrossTenantReportsNotFound(t *testing.T) {
	directory, scope, _ := newDirectory(t)

	orgA := createTenant(t, scope.db, "norte")
	orgB := createTenant(t, scope.db, "sur")
	actor := createUser(t, scope.db, "a@norte.cl", orgA.ID, false)
	foreign := createUser(t, scope.db, "c@sur.cl", orgB.ID, false)

	_, err := directory.GetUser(actor, foreign.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = directory.AssignRole(actor, foreign.ID, RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignRolePreloadsOnGet(t *testing.T) {
	directory, scope, _ := newDirectory(t)
	require.NoError(t, SeedRolesAndModules(repositories.NewRBACPgRepository(scope.db)))

	org := createTenant(t, scope.db, "norte")
	actor := createUser(t, scope.db, "a@norte.cl", org.ID, false)
	target := createUser(t, scope.db, "b@norte.cl", org.ID, false)

	require.NoError(t, directory.AssignRole(actor, target.ID, RoleManager))

	got, err := directory.GetUser(actor, target.ID)
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)
	assert.Equal(t, RoleManager, got.Roles[0].Name)

	// Unknown role names surface as NotFound.
	assert.ErrorIs(t, directory.AssignRole(actor, target.ID, "Ghost"), ErrNotFound)
}

func TestUpdateOrganization(t *testing.T) {
	directory, scope, _ := newDirectory(t)

	org := createTenant(t, scope.db, "norte")
	actor := createUser(t, scope.db, "a@norte.cl", org.ID, false)

	_, err := directory.UpdateOrganization(actor, &entities.Organization{Email: "nope"})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := directory.UpdateOrganization(actor, &entities.Organization{Name: "Minera Norte"})
	require.NoError(t, err)
	assert.Equal(t, "Minera Norte", updated.Name)
	assert.Equal(t, "norte@test.cl", updated.Email)

	orphan := createUser(t, scope.db, "orphan@test.cl", "", false)
	_, err = directory.GetOrganization(orphan)
	assert.ErrorIs(t, err, ErrNotFound)
}
