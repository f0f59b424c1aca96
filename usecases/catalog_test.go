package usecases

import (
	"testing"
	"time"

	"monitoreo-server/db"
	"monitoreo-server/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (*CatalogUseCase, db.Database) {
	t.Helper()
	database := openTestDB(t)
	return NewCatalogUseCase(database, newScope(database)), database
}

func TestCreateDeviceValidatesTaxonomy(t *testing.T) {
	catalog, database := newCatalog(t)

	org := createTenant(t, database, "norte")
	other := createTenant(t, database, "sur")
	mine := createDeviceTree(t, database, org, "seed")
	foreign := createDeviceTree(t, database, other, "foreign")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	_, err := catalog.CreateDevice(user, &entities.Device{Name: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	// Another tenant's category is as good as a missing one.
	_, err = catalog.CreateDevice(user, &entities.Device{
		Name:       "x",
		CategoryID: foreign.category.ID,
		ZoneID:     mine.zone.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	device, err := catalog.CreateDevice(user, &entities.Device{
		Name:       "bomba-3",
		Reference:  "BX-300",
		CategoryID: mine.category.ID,
		ZoneID:     mine.zone.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, device.OrganizationID)
	assert.Equal(t, org.ID, *device.OrganizationID)
}

func TestUpdateDeviceValidatesTaxonomy(t *testing.T) {
	catalog, database := newCatalog(t)

	org := createTenant(t, database, "norte")
	other := createTenant(t, database, "sur")
	mine := createDeviceTree(t, database, org, "seed")
	foreign := createDeviceTree(t, database, other, "foreign")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	// Re-pointing at another tenant's taxonomy fails like any bad reference.
	_, err := catalog.UpdateDevice(user, mine.device.ID, &entities.Device{
		CategoryID: foreign.category.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = catalog.UpdateDevice(user, mine.device.ID, &entities.Device{
		ZoneID: foreign.zone.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// The stored references survived the rejected updates.
	stored, err := catalog.GetDevice(user, mine.device.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.category.ID, stored.CategoryID)
	assert.Equal(t, mine.zone.ID, stored.ZoneID)

	second := createDeviceTree(t, database, org, "second")
	updated, err := catalog.UpdateDevice(user, mine.device.ID, &entities.Device{
		CategoryID: second.category.ID,
		ZoneID:     second.zone.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, second.category.ID, updated.CategoryID)
	assert.Equal(t, second.zone.ID, updated.ZoneID)
}

func TestDeviceFilterSearchAndSort(t *testing.T) {
	catalog, database := newCatalog(t)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "seed")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	for _, name := range []string{"Bomba Principal", "Ventilador", "Bomba Auxiliar"} {
		_, err := catalog.CreateDevice(user, &entities.Device{
			Name:       name,
			CategoryID: tree.category.ID,
			ZoneID:     tree.zone.ID,
		})
		require.NoError(t, err)
	}

	found, err := catalog.ListDevices(user, DeviceFilter{Search: "bomba", Sort: "name"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Bomba Auxiliar", found[0].Name)
	assert.Equal(t, "Bomba Principal", found[1].Name)

	byCategory, err := catalog.ListDevices(user, DeviceFilter{CategoryID: tree.category.ID})
	require.NoError(t, err)
	assert.Len(t, byCategory, 4) // three created here plus the seed device

	// Unknown sort keys fall back to the default ordering instead of erroring.
	_, err = catalog.ListDevices(user, DeviceFilter{Sort: "; DROP TABLE devices"})
	assert.NoError(t, err)
}

func TestDeleteCategoryCascadesToLiveDevices(t *testing.T) {
	catalog, database := newCatalog(t)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "device-a")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	// A second device in the same category, already tombstoned.
	gone := &entities.Device{
		Name:           "device-b",
		CategoryID:     tree.category.ID,
		ZoneID:         tree.zone.ID,
		OrganizationID: &org.ID,
	}
	require.NoError(t, database.GetDB().Create(gone).Error)
	require.NoError(t, ScopedDelete[entities.Device](catalog.Scope(), user, gone.ID))
	before, err := ScopedListAll[entities.Device](catalog.Scope(), user)
	require.NoError(t, err)
	var goneStamp time.Time
	for _, d := range before {
		if d.ID == gone.ID {
			goneStamp = d.DeletedAt.Time
		}
	}

	require.NoError(t, catalog.DeleteCategory(user, tree.category.ID))

	// The live device went down with its category.
	_, err = catalog.GetDevice(user, tree.device.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The already tombstoned device kept its original stamp.
	after, err := ScopedListAll[entities.Device](catalog.Scope(), user)
	require.NoError(t, err)
	for _, d := range after {
		if d.ID == gone.ID {
			assert.Equal(t, goneStamp, d.DeletedAt.Time)
		}
		assert.True(t, d.DeletedAt.Valid)
	}

	// The category itself can come back; its devices stay tombstoned.
	require.NoError(t, catalog.RestoreCategory(user, tree.category.ID))
	_, err = catalog.GetCategory(user, tree.category.ID)
	require.NoError(t, err)
	_, err = catalog.GetDevice(user, tree.device.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeasurementLifecycle(t *testing.T) {
	catalog, database := newCatalog(t)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "device-a")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	created, err := catalog.CreateMeasurement(user, &entities.Measurement{
		DeviceID: tree.device.ID,
		Value:    decimal.NewFromFloat(23.517),
		Unit:     "C",
	})
	require.NoError(t, err)
	assert.False(t, created.Date.IsZero())

	listed, err := catalog.ListMeasurements(user, MeasurementFilter{DeviceID: tree.device.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Value.Equal(decimal.NewFromFloat(23.517)))

	next := decimal.NewFromFloat(24)
	updated, err := catalog.UpdateMeasurement(user, created.ID, &MeasurementUpdate{Value: &next})
	require.NoError(t, err)
	assert.True(t, updated.Value.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, "C", updated.Unit)

	// A reading of exactly zero is a real value, not an omitted field.
	zero := decimal.Zero
	updated, err = catalog.UpdateMeasurement(user, created.ID, &MeasurementUpdate{Value: &zero})
	require.NoError(t, err)
	assert.True(t, updated.Value.IsZero())
	assert.Equal(t, "C", updated.Unit)

	// An absent value leaves the stored reading alone.
	updated, err = catalog.UpdateMeasurement(user, created.ID, &MeasurementUpdate{Unit: "K"})
	require.NoError(t, err)
	assert.True(t, updated.Value.IsZero())
	assert.Equal(t, "K", updated.Unit)
}

func TestAlertLevelsAndMarkRead(t *testing.T) {
	catalog, database := newCatalog(t)

	org := createTenant(t, database, "norte")
	tree := createDeviceTree(t, database, org, "device-a")
	user := createUser(t, database, "a@norte.cl", org.ID, false)

	_, err := catalog.CreateAlert(user, &entities.Alert{
		DeviceID: tree.device.ID,
		Message:  "sobrecalentamiento",
		Level:    "CRITICAL",
	})
	assert.ErrorIs(t, err, ErrValidation)

	alert, err := catalog.CreateAlert(user, &entities.Alert{
		DeviceID: tree.device.ID,
		Message:  "sobrecalentamiento",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AlertLevelMedia, alert.Level)
	assert.False(t, alert.Read)

	read, err := catalog.MarkAlertRead(user, alert.ID, true)
	require.NoError(t, err)
	assert.True(t, read.Read)
}
