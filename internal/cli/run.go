package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
)

type runResult struct {
	Exercise string   `json:"exercise"`
	Caller   string   `json:"caller"`
	Args     []string `json:"args,omitempty"`
	Output   string   `json:"output"`
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <exercise> <caller> [args...]",
		Short: "Run a query or mutation of an exercise and print its output",
		Example: "  drills run students get_students_info\n" +
			"  drills run hotel reserve_regular 101 2025-02-01 2025-02-03",
		Args: argsBetween(2, -1),
		RunE: a.runCaller,
	}
}

func (a *app) runCaller(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return a.withExercise(ctx, args[0], func(backend *store.Backend, ex exercise.Exercise) error {
		caller, err := ex.Caller(args[1])
		if err != nil {
			return err
		}
		callerArgs := args[2:]
		out, err := caller.Run(ctx, backend.DB().WithContext(ctx), callerArgs)
		if err != nil {
			return store.TranslateError(err)
		}
		a.log.Debug("caller finished", "exercise", ex.Name, "caller", caller.Name)
		return a.emit(cmd, out, runResult{Exercise: ex.Name, Caller: caller.Name, Args: callerArgs, Output: out})
	})
}
