package services

import (
	"testing"
	"time"

	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/repositories"
	"monitoreo-server/usecases"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

type dashboardFixture struct {
	database db.Database
	service  *DashboardService
	user     *entities.User
	device   *entities.Device
}

func setupDashboard(t *testing.T, ttl time.Duration) dashboardFixture {
	t.Helper()
	database := openTestDB(t)
	scope := usecases.NewTenantScope(database, repositories.NewUserPgRepository(database))
	service := NewDashboardService(database, scope, ttl, zap.NewNop())

	gdb := database.GetDB()
	org := &entities.Organization{Name: "norte", Email: "norte@test.cl"}
	require.NoError(t, gdb.Create(org).Error)
	category := &entities.Category{Name: "Ambiente", OrganizationID: &org.ID}
	require.NoError(t, gdb.Create(category).Error)
	zone := &entities.Zone{Name: "Planta", OrganizationID: &org.ID}
	require.NoError(t, gdb.Create(zone).Error)
	device := &entities.Device{
		Name:           "bomba-1",
		CategoryID:     category.ID,
		ZoneID:         zone.ID,
		OrganizationID: &org.ID,
	}
	require.NoError(t, gdb.Create(device).Error)

	user := &entities.User{Email: "a@norte.cl", PasswordHash: "x"}
	require.NoError(t, gdb.Create(user).Error)
	require.NoError(t, gdb.Create(&entities.UserProfile{UserID: user.ID, OrganizationID: org.ID}).Error)

	return dashboardFixture{database: database, service: service, user: user, device: device}
}

func TestSummaryAggregates(t *testing.T) {
	f := setupDashboard(t, time.Minute)
	gdb := f.database.GetDB()

	for i := 0; i < 3; i++ {
		require.NoError(t, gdb.Create(&entities.Measurement{
			DeviceID: f.device.ID,
			Value:    decimal.NewFromInt(int64(20 + i)),
			Unit:     "C",
		}).Error)
	}
	require.NoError(t, gdb.Create(&entities.Alert{
		DeviceID: f.device.ID,
		Message:  "temperatura alta",
		Level:    entities.AlertLevelGrave,
	}).Error)

	summary, err := f.service.Summary(f.user)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.TotalDevices)
	assert.Equal(t, int64(3), summary.TotalMeasurements)
	assert.Equal(t, int64(1), summary.TotalAlerts)
	assert.Equal(t, int64(1), summary.TotalZones)
	assert.Len(t, summary.LatestMeasurements, 3)
	assert.Equal(t, int64(1), summary.AlertCounts.Grave)
	assert.Zero(t, summary.AlertCounts.Alta)

	require.Len(t, summary.ZoneDeviceCounts, 1)
	assert.Equal(t, int64(1), summary.ZoneDeviceCounts[0].DeviceCount)

	// Everything was created today, so one bucket.
	require.Len(t, summary.MeasurementsByDay, 1)
	assert.Equal(t, int64(3), summary.MeasurementsByDay[0].Count)
}

func TestSummaryIsMemoized(t *testing.T) {
	f := setupDashboard(t, time.Minute)

	first, err := f.service.Summary(f.user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalDevices)

	// New rows are invisible until the snapshot is invalidated.
	require.NoError(t, f.database.GetDB().Create(&entities.Alert{
		DeviceID: f.device.ID,
		Message:  "x",
	}).Error)

	cached, err := f.service.Summary(f.user)
	require.NoError(t, err)
	assert.Equal(t, first.TotalAlerts, cached.TotalAlerts)

	f.service.Cache().Clear()
	fresh, err := f.service.Summary(f.user)
	require.NoError(t, err)
	assert.Equal(t, first.TotalAlerts+1, fresh.TotalAlerts)
}

func TestSummaryEmptyTenant(t *testing.T) {
	f := setupDashboard(t, time.Minute)

	orphan := &entities.User{Email: "orphan@test.cl", PasswordHash: "x"}
	require.NoError(t, f.database.GetDB().Create(orphan).Error)

	summary, err := f.service.Summary(orphan)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalDevices)
	assert.Empty(t, summary.LatestMeasurements)
}

func TestSummaryNilActor(t *testing.T) {
	f := setupDashboard(t, time.Minute)

	summary, err := f.service.Summary(nil)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalDevices)
	assert.Empty(t, summary.LatestMeasurements)
}

func TestAdminSummaryCountsEverything(t *testing.T) {
	f := setupDashboard(t, time.Minute)

	summary, err := f.service.AdminSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalUsers)
	assert.Equal(t, int64(1), summary.TotalDevices)
}
