package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/drills"
	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

type migrateResult struct {
	Exercise string   `json:"exercise"`
	Applied  []string `json:"applied"`
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [exercise...]",
		Short: "Create tables and apply pending data migrations",
		Long: "Migrate the schema of the named exercises (all when none is given),\n" +
			"then run every data migration not yet recorded in the ledger.",
		RunE: a.runMigrate,
	}
}

func (a *app) runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	targets := drills.All()
	if len(args) > 0 {
		targets = targets[:0]
		for _, name := range args {
			ex, err := drills.Find(name)
			if err != nil {
				return err
			}
			targets = append(targets, ex)
		}
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	results := make([]migrateResult, 0, len(targets))
	var lines []string
	for _, ex := range targets {
		if err := backend.Migrate(ctx, ex.Models...); err != nil {
			return fmt.Errorf("migrate %s: %w", ex.Name, err)
		}
		applied, err := backend.ApplyMigrations(ctx, ex.Migrations)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", ex.Name, err)
		}
		results = append(results, migrateResult{Exercise: ex.Name, Applied: applied})
		lines = append(lines, fmt.Sprintf("Migrated %s", ex.Name))
		for _, name := range applied {
			lines = append(lines, fmt.Sprintf("  applied %s", name))
		}
	}
	return a.emit(cmd, exercise.Lines(lines), results)
}
