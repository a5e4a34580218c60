package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/drills"
	"github.com/mesh-intelligence/ormdrills/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize drills storage",
		Long: "Create the configuration and data directories, write config.yaml and\n" +
			"create the tables of every exercise. Data migrations are left for migrate.",
		Args: argsBetween(0, 0),
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Pin an explicit --data-dir so later commands find the same database.
	if a.flags.dataDir != "" && a.settings.DataDir == "" {
		configDir, err := paths.ResolveConfigDir(a.flags.configDir)
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		dataDir, err := paths.ResolveDataDir(a.flags.dataDir, "")
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		a.settings.DataDir = dataDir
		if err := writeConfig(configDir, a.settings); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	names := drills.Names()
	for _, ex := range drills.All() {
		if err := backend.Migrate(ctx, ex.Models...); err != nil {
			return fmt.Errorf("migrate %s: %w", ex.Name, err)
		}
	}
	a.log.Info("initialized", "exercises", len(names))

	return a.emit(cmd, "Drills initialized successfully", map[string]any{
		"backend":   backend.Config().Backend,
		"data_dir":  backend.Config().DataDir,
		"exercises": names,
	})
}
