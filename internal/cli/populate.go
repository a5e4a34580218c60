package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
)

func newPopulateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "populate <exercise>",
		Short: "Insert the fixture rows of an exercise",
		Args:  argsBetween(1, 1),
		RunE:  a.runPopulate,
	}
}

func (a *app) runPopulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return a.withExercise(ctx, args[0], func(backend *store.Backend, ex exercise.Exercise) error {
		if ex.Populate == nil {
			return a.emit(cmd, fmt.Sprintf("%s has no fixture", ex.Name), map[string]any{"exercise": ex.Name, "populated": false})
		}
		err := backend.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return ex.Populate(ctx, tx)
		})
		if err != nil {
			return fmt.Errorf("populate %s: %w", ex.Name, store.TranslateError(err))
		}
		a.log.Info("populated", "exercise", ex.Name)
		return a.emit(cmd, fmt.Sprintf("Populated %s", ex.Name), map[string]any{"exercise": ex.Name, "populated": true})
	})
}
