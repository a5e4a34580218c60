package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/logger"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

type owner struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
	Tags []tag  `gorm:"many2many:owner_tags"`
}

type pet struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:50"`
	OwnerID uint
	Owner   *owner `gorm:"constraint:OnDelete:CASCADE"`
}

type tag struct {
	ID    uint   `gorm:"primaryKey"`
	Label string `gorm:"size:20"`
}

func attachFile(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend(logger.Nop())
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	b := attachFile(t, tmpDir)

	_, err := os.Stat(filepath.Join(tmpDir, DatabaseFile))
	assert.NoError(t, err, "database file should exist")

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend(nil)
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "oracle"}), types.ErrBackendUnknown)
	assert.Nil(t, b.DB())
}

func TestBackend_Detach(t *testing.T) {
	b := attachFile(t, t.TempDir())

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")
	assert.Nil(t, b.DB())

	err := b.Migrate(context.Background(), &owner{})
	assert.ErrorIs(t, err, types.ErrNotAttached)
}

func TestBackend_MemoryStoresArePrivate(t *testing.T) {
	ctx := context.Background()
	a := NewBackend(nil)
	require.NoError(t, a.Attach(types.Config{Backend: types.BackendSQLite, DataDir: types.MemoryDataDir}))
	defer a.Detach()
	c := NewBackend(nil)
	require.NoError(t, c.Attach(types.Config{Backend: types.BackendSQLite, DataDir: types.MemoryDataDir}))
	defer c.Detach()

	require.NoError(t, a.Migrate(ctx, &owner{}, &pet{}, &tag{}))
	require.NoError(t, c.Migrate(ctx, &owner{}, &pet{}, &tag{}))
	require.NoError(t, a.DB().Create(&owner{Name: "only-in-a"}).Error)

	var count int64
	require.NoError(t, c.DB().Model(&owner{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBackend_ForeignKeyCascade(t *testing.T) {
	ctx := context.Background()
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(ctx, &owner{}, &pet{}, &tag{}))
	db := b.DB()

	o := owner{Name: "Ana"}
	require.NoError(t, db.Create(&o).Error)
	require.NoError(t, db.Create(&[]pet{{Name: "Rex", OwnerID: o.ID}, {Name: "Tom", OwnerID: o.ID}}).Error)
	require.NoError(t, db.Delete(&owner{}, o.ID).Error)

	var count int64
	require.NoError(t, db.Model(&pet{}).Count(&count).Error)
	assert.Zero(t, count, "pets are deleted with their owner")
}

func TestTranslateError(t *testing.T) {
	ctx := context.Background()
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(ctx, &owner{}, &pet{}, &tag{}))
	db := b.DB()

	require.NoError(t, db.Create(&owner{Name: "Ana"}).Error)
	err := TranslateError(db.Create(&owner{Name: "Ana"}).Error)
	assert.ErrorIs(t, err, types.ErrDuplicate)

	var o owner
	assert.ErrorIs(t, First(db.Where("name = ?", "nobody"), &o), types.ErrNotFound)
	assert.NoError(t, TranslateError(nil))

	other := errors.New("boom")
	assert.Equal(t, other, TranslateError(other))
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(ctx, &owner{}, &pet{}, &tag{}))

	runs := 0
	migs := []DataMigration{
		{Name: "0001_seed_owner", Apply: func(ctx context.Context, tx *gorm.DB) error {
			runs++
			return tx.Create(&owner{Name: "Seeded"}).Error
		}},
	}

	applied, err := b.ApplyMigrations(ctx, migs)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_seed_owner"}, applied)

	applied, err = b.ApplyMigrations(ctx, migs)
	require.NoError(t, err)
	assert.Empty(t, applied, "second run is a no-op")
	assert.Equal(t, 1, runs)

	names, err := b.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_seed_owner"}, names)
}

func TestApplyMigrations_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	b := attachFile(t, t.TempDir())
	require.NoError(t, b.Migrate(ctx, &owner{}, &pet{}, &tag{}))

	_, err := b.ApplyMigrations(ctx, []DataMigration{{
		Name: "0002_broken",
		Apply: func(ctx context.Context, tx *gorm.DB) error {
			if err := tx.Create(&owner{Name: "Partial"}).Error; err != nil {
				return err
			}
			return errors.New("broken")
		},
	}})
	require.Error(t, err)

	var count int64
	require.NoError(t, b.DB().Model(&owner{}).Count(&count).Error)
	assert.Zero(t, count)

	names, err := b.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = b.ApplyMigrations(ctx, []DataMigration{{Name: "no-body"}})
	assert.ErrorIs(t, err, ErrMigrationName)
}

func TestTableNames(t *testing.T) {
	b := attachFile(t, t.TempDir())
	tables, err := TableNames(b.DB(), &owner{}, &pet{}, &tag{}, &owner{})
	require.NoError(t, err)
	assert.Equal(t, []string{"owners", "pets", "tags", "owner_tags"}, tables)
}
