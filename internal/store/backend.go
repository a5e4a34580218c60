// Package store opens the relational database behind the drills, migrates
// exercise models, applies one-off data migrations and dumps or loads table
// contents as JSONL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ormdrills/internal/logger"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// DatabaseFile is the SQLite file created inside the data directory.
const DatabaseFile = "drills.db"

// sqliteParams enables foreign keys (cascades depend on them) and stores
// timestamps in a format SQLite's date functions understand.
const sqliteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// slowQuery is the threshold above which GORM reports a query as slow.
const slowQuery = 500 * time.Millisecond

// Backend owns the database connection for one drills session.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *gorm.DB
	log      *logger.Logger
}

// NewBackend creates a new backend instance. The backend is not attached;
// call Attach with a Config to open the database.
func NewBackend(log *logger.Logger) *Backend {
	if log == nil {
		log = logger.Nop()
	}
	return &Backend{log: log.With("component", "store")}
}

// Attach opens the database described by config and creates the data
// migration ledger. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	gormCfg := &gorm.Config{
		Logger:         logger.GormLogger(b.log, logger.GormLevel(config.LogMode), slowQuery),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch config.Backend {
	case types.BackendSQLite:
		db, err = openSQLite(config.DataDir, gormCfg)
	case types.BackendPostgres:
		db, err = gorm.Open(postgres.Open(config.DSN), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", config.Backend, err)
	}

	if err := db.AutoMigrate(&migrationRecord{}); err != nil {
		closeDB(db)
		return fmt.Errorf("create migration ledger: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	b.log.Debug("attached", "backend", config.Backend, "data_dir", config.DataDir)
	return nil
}

// openSQLite opens the database through the pure-Go modernc driver and hands
// the connection pool to GORM's SQLite dialector.
func openSQLite(dataDir string, cfg *gorm.Config) (*gorm.DB, error) {
	var dsn string
	memory := dataDir == types.MemoryDataDir
	if memory {
		dsn = ":memory:?" + sqliteParams
	} else {
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		dsn = "file:" + filepath.Join(dataDir, DatabaseFile) + "?" + sqliteParams
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if memory {
		// Every connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
	}

	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", Conn: conn}), cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := closeDB(b.db); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	b.log.Debug("detached")
	return nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the GORM handle, or nil when detached.
func (b *Backend) DB() *gorm.DB {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.db
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// Migrate creates or alters the tables of the given models.
func (b *Backend) Migrate(ctx context.Context, models ...any) error {
	db, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	b.log.Debug("schema migrated", "models", len(models))
	return nil
}

// handle returns a context-bound handle or ErrNotAttached.
func (b *Backend) handle(ctx context.Context) (*gorm.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrNotAttached
	}
	return b.db.WithContext(ctx), nil
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
