package repositories

import (
	"testing"
	"time"

	"monitoreo-server/db"
	"monitoreo-server/entities"

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

func TestLifecycleCreateAndGet(t *testing.T) {
	database := openTestDB(t)
	repo := NewLifecycleRepository[entities.Category](database)

	category := &entities.Category{Name: "Ambiente"}
	require.NoError(t, repo.Create(category))
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, entities.StatusActive, category.Status)

	got, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ambiente", got.Name)
}

func TestDeleteHidesFromDefaultView(t *testing.T) {
	database := openTestDB(t)
	repo := NewLifecycleRepository[entities.Category](database)

	category := &entities.Category{Name: "Ambiente"}
	require.NoError(t, repo.Create(category))
	require.NoError(t, repo.Delete(category.ID))

	// Default view excludes the tombstone.
	_, err := repo.GetByID(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	live, err := repo.ListLive()
	require.NoError(t, err)
	assert.Empty(t, live)

	// The row itself survives for history.
	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].DeletedAt.Valid)

	tombstoned, err := repo.GetByIDAny(category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, tombstoned.ID)
}

func TestDeleteIsIdempotentAndRefreshesTimestamp(t *testing.T) {
	database := openTestDB(t)
	repo := NewLifecycleRepository[entities.Category](database)

	category := &entities.Category{Name: "Ambiente"}
	require.NoError(t, repo.Create(category))

	require.NoError(t, repo.Delete(category.ID))
	first, err := repo.GetByIDAny(category.ID)
	require.NoError(t, err)
	require.True(t, first.DeletedAt.Valid)

	time.Sleep(20 * time.Millisecond)

	// Second delete succeeds and moves deleted_at forward.
	require.NoError(t, repo.Delete(category.ID))
	second, err := repo.GetByIDAny(category.ID)
	require.NoError(t, err)
	require.True(t, second.DeletedAt.Valid)
	assert.True(t, second.DeletedAt.Time.After(first.DeletedAt.Time))
}

func TestRestoreClearsTombstone(t *testing.T) {
	database := openTestDB(t)
	repo := NewLifecycleRepository[entities.Category](database)

	category := &entities.Category{Name: "Ambiente"}
	require.NoError(t, repo.Create(category))
	require.NoError(t, repo.Delete(category.ID))
	require.NoError(t, repo.Restore(category.ID))

	got, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	assert.False(t, got.DeletedAt.Valid)

	// Restoring a live row is a no-op success.
	require.NoError(t, repo.Restore(category.ID))
}

func TestHardDeleteRemovesRow(t *testing.T) {
	database := openTestDB(t)
	repo := NewLifecycleRepository[entities.Category](database)

	category := &entities.Category{Name: "Ambiente"}
	require.NoError(t, repo.Create(category))
	require.NoError(t, repo.HardDelete(category.ID))

	_, err := repo.GetByIDAny(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListLiveOrdersNewestFirst(t *testing.T) {
	database := openTestDB(t)
	repo := NewLifecycleRepository[entities.Category](database)

	older := &entities.Category{Name: "older"}
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(older))
	newer := &entities.Category{Name: "newer"}
	require.NoError(t, repo.Create(newer))

	live, err := repo.ListLive()
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "newer", live[0].Name)
	assert.Equal(t, "older", live[1].Name)
}

func TestDuplicateEmailTranslates(t *testing.T) {
	database := openTestDB(t)
	users := NewUserPgRepository(database)

	require.NoError(t, users.Create(&entities.User{Email: "a@b.cl", PasswordHash: "x"}))
	err := users.Create(&entities.User{Email: "a@b.cl", PasswordHash: "y"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
