// Package storetest opens throwaway in-memory stores for tests.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/logger"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// Backend attaches a private in-memory SQLite backend, migrates models and
// detaches it when the test ends.
func Backend(tb testing.TB, models ...any) *store.Backend {
	tb.Helper()

	b := store.NewBackend(logger.Nop())
	require.NoError(tb, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: types.MemoryDataDir,
	}))
	tb.Cleanup(func() { _ = b.Detach() })

	if len(models) > 0 {
		require.NoError(tb, b.Migrate(context.Background(), models...))
	}
	return b
}

// DB is Backend followed by DB().
func DB(tb testing.TB, models ...any) *gorm.DB {
	tb.Helper()
	return Backend(tb, models...).DB()
}
