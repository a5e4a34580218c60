package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DataMigration is a named, one-off data transformation. Apply runs inside
// a transaction and must use only the handle it is given.
type DataMigration struct {
	Name  string
	Apply func(ctx context.Context, tx *gorm.DB) error
}

// migrationRecord is a row of the data migration ledger.
type migrationRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"uniqueIndex;size:200;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (migrationRecord) TableName() string { return "data_migrations" }

// ErrMigrationName is returned for a migration without a name or body.
var ErrMigrationName = errors.New("data migration needs a name and an Apply func")

// ApplyMigrations runs every migration not yet recorded in the ledger, in
// order, and returns the names it applied. Each migration and its ledger row
// commit together.
func (b *Backend) ApplyMigrations(ctx context.Context, migrations []DataMigration) ([]string, error) {
	db, err := b.handle(ctx)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range migrations {
		if m.Name == "" || m.Apply == nil {
			return applied, ErrMigrationName
		}

		var count int64
		if err := db.Model(&migrationRecord{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("checking migration %s: %w", m.Name, err)
		}
		if count > 0 {
			b.log.Debug("migration already applied", "name", m.Name)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Apply(ctx, tx); err != nil {
				return err
			}
			return tx.Create(&migrationRecord{ID: newUUID(), Name: m.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("applying migration %s: %w", m.Name, err)
		}
		b.log.Info("migration applied", "name", m.Name)
		applied = append(applied, m.Name)
	}
	return applied, nil
}

// AppliedMigrations lists ledger entries in the order they were applied.
func (b *Backend) AppliedMigrations(ctx context.Context) ([]string, error) {
	db, err := b.handle(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := db.Model(&migrationRecord{}).Order("applied_at, name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}
	return names, nil
}
