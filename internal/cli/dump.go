package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/paths"
	"github.com/mesh-intelligence/ormdrills/internal/store"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <exercise> [dir]",
		Short: "Write the tables of an exercise as JSONL files",
		Long:  "Write one <table>.jsonl file per table. dir defaults to <data-dir>/dumps/<exercise>.",
		Args:  argsBetween(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transfer(cmd, args, (*store.Backend).Dump, "Dumped")
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <exercise> [dir]",
		Short: "Insert rows from JSONL files into the tables of an exercise",
		Long:  "Read <table>.jsonl files written by dump. Missing files are skipped.",
		Args:  argsBetween(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transfer(cmd, args, (*store.Backend).Load, "Loaded")
		},
	}
}

type transferFunc func(b *store.Backend, ctx context.Context, dir string, models ...any) (map[string]int, error)

// transfer runs a dump or load between the exercise tables and a directory.
func (a *app) transfer(cmd *cobra.Command, args []string, fn transferFunc, verb string) error {
	ctx := cmd.Context()
	return a.withExercise(ctx, args[0], func(backend *store.Backend, ex exercise.Exercise) error {
		dir := exercise.Arg(args, 1)
		if dir == "" {
			dir = paths.DumpDir(backend.Config().DataDir, ex.Name)
		}
		counts, err := fn(backend, ctx, dir, ex.Models...)
		if err != nil {
			return fmt.Errorf("%s: %w", ex.Name, store.TranslateError(err))
		}
		lines := append([]string{fmt.Sprintf("%s %s (%s)", verb, ex.Name, dir)}, tableCounts(counts)...)
		return a.emit(cmd, exercise.Lines(lines), map[string]any{"exercise": ex.Name, "dir": dir, "tables": counts})
	})
}
