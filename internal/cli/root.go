// Package cli implements the drills command-line interface: it attaches the
// store described by config.yaml and flags, then migrates, populates, runs,
// dumps or loads one exercise at a time.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/logger"
	"github.com/mesh-intelligence/ormdrills/internal/paths"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logMode   string
	jsonMode  bool
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	flags    rootFlags
	settings settings
	log      *logger.Logger
	runID    string
}

// NewRootCmd creates the top-level "drills" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	root := &cobra.Command{
		Use:   "drills",
		Short: "Run the ORM drills against a local database",
		Long: "drills migrates, populates and queries the ORM exercises.\n" +
			"Each exercise owns its tables; callers print what the query or mutation returns.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.log.Sync() },
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.drills or the platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.drills-db)")
	root.PersistentFlags().StringVar(&a.flags.logMode, "log-mode", "", "log mode: dev, prod or nop (default from config)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newExercisesCmd(a),
		newMigrateCmd(a),
		newPopulateCmd(a),
		newRunCmd(a),
		newDumpCmd(a),
		newLoadCmd(a),
	)
	return root
}

// setup loads config.yaml and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	s, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if a.flags.logMode != "" {
		s.LogMode = a.flags.logMode
	}
	a.settings = s

	log, err := logger.New(s.LogMode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.runID = uuid.NewString()
	a.log = log.With("run_id", a.runID, "command", cmd.Name())
	a.log.Debug("config loaded", "config_dir", configDir, "backend", s.Backend)
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode classifies err: mistakes in what the user asked for exit 1,
// everything else 2.
func exitCode(err error) int {
	var ve *validate.Error
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ve),
		errors.Is(err, types.ErrUnknownExercise),
		errors.Is(err, types.ErrUnknownCaller),
		errors.Is(err, types.ErrInvalidArgs),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrDuplicate),
		errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}
