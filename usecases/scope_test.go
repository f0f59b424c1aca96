package usecases

import (
	"testing"

	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) db.Database {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, gdb.AutoMigrate(db.Models()...))

	return &db.GormDatabase{DB: gdb}
}

func createTenant(t *testing.T, database db.Database, name string) *entities.Organization {
	t.Helper()
	org := &entities.Organization{Name: name, Email: name + "@test.cl"}
	require.NoError(t, database.GetDB().Create(org).Error)
	return org
}

// createUser persists a user; orgID == "" leaves the user without a
// profile, which resolves to the empty tenant.
func createUser(t *testing.T, database db.Database, email, orgID string, superuser bool) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, PasswordHash: "x", IsSuperuser: superuser}
	require.NoError(t, database.GetDB().Create(user).Error)
	if orgID != "" {
		profile := &entities.UserProfile{UserID: user.ID, OrganizationID: orgID}
		require.NoError(t, database.GetDB().Create(profile).Error)
	}
	return user
}

type fixture struct {
	category *entities.Category
	zone     *entities.Zone
	device   *entities.Device
}

// createDeviceTree persists a category, zone and device belonging to org.
func createDeviceTree(t *testing.T, database db.Database, org *entities.Organization, name string) fixture {
	t.Helper()
	category := &entities.Category{Name: name + "-cat", OrganizationID: &org.ID}
	require.NoError(t, database.GetDB().Create(category).Error)
	zone := &entities.Zone{Name: name + "-zone", OrganizationID: &org.ID}
	require.NoError(t, database.GetDB().Create(zone).Error)
	device := &entities.Device{
		Name:           name,
		CategoryID:     category.ID,
		ZoneID:         zone.ID,
		OrganizationID: &org.ID,
	}
	require.NoError(t, database.GetDB().Create(device).Error)
	return fixture{category: category, zone: zone, device: device}
}

func newScope(database db.Database) *TenantScope {
	return NewTenantScope(database, repositories.NewUserPgRepository(database))
}

func TestScopedListIsolatesTenants(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	orgA := createTenant(t, database, "norte")
	orgB := createTenant(t, database, "sur")
	createDeviceTree(t, database, orgA, "device-a")
	createDeviceTree(t, database, orgB, "device-b")

	userA := createUser(t, database, "a@norte.cl", orgA.ID, false)
	devices, err := ScopedList[entities.Device](scope, userA)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "device-a", devices[0].Name)
}

func TestScopedGetCrossTenantReportsNotFound(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	orgA := createTenant(t, database, "norte")
	orgB := createTenant(t, database, "sur")
	foreign := createDeviceTree(t, database, orgB, "device-b")

	userA := createUser(t, database, "a@norte.cl", orgA.ID, false)

	// The row exists, but under another tenant: NotFound, never Forbidden.
	_, err := ScopedGet[entities.Device](scope, userA, foreign.device.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = ScopedDelete[entities.Device](scope, userA, foreign.device.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ScopedUpdate(scope, userA, foreign.device.ID, func(*entities.Device) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyTenantFailsClosed(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	org := createTenant(t, database, "norte")
	createDeviceTree(t, database, org, "device-a")

	// No profile: the user resolves to the empty tenant.
	orphan := createUser(t, database, "orphan@test.cl", "", false)

	devices, err := ScopedList[entities.Device](scope, orphan)
	require.NoError(t, err)
	assert.Empty(t, devices)

	_, err = ScopedCreate(scope, orphan, &entities.Category{Name: "x"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = ScopedDelete[entities.Category](scope, orphan, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDanglingProfileResolvesToEmptyTenant(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	org := createTenant(t, database, "norte")
	createDeviceTree(t, database, org, "device-a")

	user := createUser(t, database, "a@norte.cl", org.ID, false)
	// Hard-remove the organization; the FK cascade removes the profile too,
	// so the user now resolves to the empty tenant.
	require.NoError(t, database.GetDB().Unscoped().Delete(&entities.Organization{}, "id = ?", org.ID).Error)

	resolved, err := scope.ResolveOrganization(user)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestSuperuserBypassesTenantFilter(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	orgA := createTenant(t, database, "norte")
	orgB := createTenant(t, database, "sur")
	createDeviceTree(t, database, orgA, "device-a")
	createDeviceTree(t, database, orgB, "device-b")

	root := createUser(t, database, "root@test.cl", "", true)

	devices, err := ScopedList[entities.Device](scope, root)
	require.NoError(t, err)
	assert.Len(t, devices, 2)
}

func TestScopedCreateStampsOrganization(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	orgA := createTenant(t, database, "norte")
	orgB := createTenant(t, database, "sur")
	userA := createUser(t, database, "a@norte.cl", orgA.ID, false)

	// The client-supplied organization is overwritten with the resolved one.
	payload := &entities.Category{Name: "Ambiente", OrganizationID: &orgB.ID}
	created, err := ScopedCreate(scope, userA, payload)
	require.NoError(t, err)
	require.NotNil(t, created.OrganizationID)
	assert.Equal(t, orgA.ID, *created.OrganizationID)
}

func TestScopedCreateChildRequiresVisibleDevice(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	orgA := createTenant(t, database, "norte")
	orgB := createTenant(t, database, "sur")
	foreign := createDeviceTree(t, database, orgB, "device-b")
	userA := createUser(t, database, "a@norte.cl", orgA.ID, false)

	_, err := ScopedCreate(scope, userA, &entities.Sensor{
		DeviceID: foreign.device.ID,
		Name:     "temp",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ScopedCreate(scope, userA, &entities.Sensor{Name: "temp"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeviceChildrenScopeThroughDevice(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	orgA := createTenant(t, database, "norte")
	orgB := createTenant(t, database, "sur")
	mine := createDeviceTree(t, database, orgA, "device-a")
	foreign := createDeviceTree(t, database, orgB, "device-b")

	require.NoError(t, database.GetDB().Create(&entities.Sensor{DeviceID: mine.device.ID, Name: "temp-a"}).Error)
	require.NoError(t, database.GetDB().Create(&entities.Sensor{DeviceID: foreign.device.ID, Name: "temp-b"}).Error)

	userA := createUser(t, database, "a@norte.cl", orgA.ID, false)
	sensors, err := ScopedList[entities.Sensor](scope, userA)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	assert.Equal(t, "temp-a", sensors[0].Name)
}

func TestScopedDeleteTombstonedRowSucceeds(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "device-a")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	require.NoError(t, ScopedDelete[entities.Device](scope, user, tree.device.ID))
	// Second delete still succeeds even though the row is now tombstoned.
	require.NoError(t, ScopedDelete[entities.Device](scope, user, tree.device.ID))

	require.NoError(t, ScopedRestore[entities.Device](scope, user, tree.device.ID))
	restored, err := ScopedGet[entities.Device](scope, user, tree.device.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-a", restored.Name)
}

func TestScopedHardDeleteCascades(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "device-a")
	require.NoError(t, database.GetDB().Create(&entities.Measurement{DeviceID: tree.device.ID, Unit: "C"}).Error)

	root := createUser(t, database, "root@test.cl", "", true)
	require.NoError(t, ScopedHardDelete[entities.Device](scope, root, tree.device.ID))

	var n int64
	require.NoError(t, database.GetDB().Unscoped().Model(&entities.Measurement{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestScopedListAllIncludesTombstones(t *testing.T) {
	database := openTestDB(t)
	scope := newScope(database)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "device-a")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	require.NoError(t, ScopedDelete[entities.Device](scope, user, tree.device.ID))

	live, err := ScopedList[entities.Device](scope, user)
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := ScopedListAll[entities.Device](scope, user)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].DeletedAt.Valid)
}
