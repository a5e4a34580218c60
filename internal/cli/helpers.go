package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/drills"
	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/paths"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// errUsage marks wrong argument counts.
var errUsage = errors.New("wrong number of arguments")

// argsBetween accepts min to max positional arguments; max < 0 means no
// upper bound.
func argsBetween(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || (max >= 0 && len(args) > max) {
			return fmt.Errorf("%w: usage: %s", errUsage, cmd.UseLine())
		}
		return nil
	}
}

// storeConfig builds the backend config from settings and flags.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.settings.Backend,
		DataDir: dataDir,
		DSN:     a.settings.DSN,
		LogMode: a.settings.LogMode,
	}, nil
}

// attachBackend opens the configured store. The caller must defer
// backend.Detach().
func (a *app) attachBackend() (*store.Backend, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	backend := store.NewBackend(a.log)
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return backend, nil
}

// withExercise attaches the store, migrates the schema of the named
// exercise and calls fn.
func (a *app) withExercise(ctx context.Context, name string, fn func(*store.Backend, exercise.Exercise) error) error {
	ex, err := drills.Find(name)
	if err != nil {
		return err
	}
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := backend.Migrate(ctx, ex.Models...); err != nil {
		return fmt.Errorf("migrate %s: %w", ex.Name, err)
	}
	return fn(backend, ex)
}

// emit prints text, or v as indented JSON in --json mode.
func (a *app) emit(cmd *cobra.Command, text string, v any) error {
	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

// tableCounts renders per-table row counts sorted by table name.
func tableCounts(counts map[string]int) []string {
	tables := make([]string, 0, len(counts))
	for t := range counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	lines := make([]string, len(tables))
	for i, t := range tables {
		lines[i] = fmt.Sprintf("%s: %d rows", t, counts[t])
	}
	return lines
}
