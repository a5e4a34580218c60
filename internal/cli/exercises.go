package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ormdrills/internal/drills"
	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

type callerInfo struct {
	Name  string `json:"name"`
	Usage string `json:"usage,omitempty"`
}

type exerciseInfo struct {
	Name       string       `json:"name"`
	Summary    string       `json:"summary"`
	Migrations []string     `json:"migrations,omitempty"`
	Callers    []callerInfo `json:"callers"`
}

func newExercisesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "exercises [exercise]",
		Aliases: []string{"ls"},
		Short:   "List exercises and their callers",
		Args:    argsBetween(0, 1),
		RunE:    a.runExercises,
	}
}

func (a *app) runExercises(cmd *cobra.Command, args []string) error {
	all := drills.All()
	if len(args) == 1 {
		ex, err := drills.Find(args[0])
		if err != nil {
			return err
		}
		all = []exercise.Exercise{ex}
	}

	infos := make([]exerciseInfo, 0, len(all))
	var b strings.Builder
	for _, ex := range all {
		info := exerciseInfo{Name: ex.Name, Summary: ex.Summary}
		for _, m := range ex.Migrations {
			info.Migrations = append(info.Migrations, m.Name)
		}
		fmt.Fprintf(&b, "%s: %s\n", ex.Name, ex.Summary)
		for _, name := range ex.CallerNames() {
			c, _ := ex.Caller(name)
			info.Callers = append(info.Callers, callerInfo{Name: c.Name, Usage: c.Usage})
			if c.Usage != "" {
				fmt.Fprintf(&b, "  %s %s\n", c.Name, c.Usage)
			} else {
				fmt.Fprintf(&b, "  %s\n", c.Name)
			}
		}
		infos = append(infos, info)
	}
	return a.emit(cmd, strings.TrimRight(b.String(), "\n"), infos)
}
