package dragons

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the dragons drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "dragons",
		Summary:  "Houses, dragons and quests: prefix search, aggregates and a transactional quest winner",
		Models:   []any{&House{}, &Dragon{}, &Quest{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "get_houses", Usage: "<prefix>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				return GetHouses(ctx, db, exercise.Arg(args, 0))
			}},
			{Name: "get_most_dangerous_house", Run: exercise.NoArgs(GetMostDangerousHouse)},
			{Name: "get_most_powerful_dragon", Run: exercise.NoArgs(GetMostPowerfulDragon)},
			{Name: "update_dragons_data", Run: exercise.NoArgs(UpdateDragonsData)},
			{Name: "get_earliest_quest", Run: exercise.NoArgs(GetEarliestQuest)},
			{Name: "announce_quest_winner", Usage: "<code>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 1, "announce_quest_winner <code>"); err != nil {
					return "", err
				}
				return AnnounceQuestWinner(ctx, db, args[0])
			}},
		},
	}
}

// Populate inserts three houses, four dragons and two quests.
func Populate(ctx context.Context, db *gorm.DB) error {
	sick := false
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		targaryen := House{Name: "Targaryen", Motto: exercise.Ptr("Fire and Blood"), IsRuling: true, Castle: exercise.Ptr("Dragonstone"), Wins: 3}
		velaryon := House{Name: "Velaryon", Motto: exercise.Ptr("The Old, the True, the Brave"), Castle: exercise.Ptr("Driftmark"), Wins: 1}
		baratheon := House{Name: "Baratheon"}
		if err := tx.Create(&[]*House{&targaryen, &velaryon, &baratheon}).Error; err != nil {
			return fmt.Errorf("creating houses: %w", err)
		}

		caraxes := Dragon{Name: "Caraxes", Power: decimal.RequireFromString("9.5"), Breath: BreathFire, BirthDate: exercise.Date(1990, time.March, 1), HouseID: targaryen.ID}
		syrax := Dragon{Name: "Syrax", Power: decimal.RequireFromString("7.0"), Breath: BreathFire, BirthDate: exercise.Date(1995, time.June, 12), HouseID: targaryen.ID}
		vermax := Dragon{Name: "Vermax", Power: decimal.RequireFromString("5.5"), Breath: BreathIce, IsHealthy: &sick, BirthDate: exercise.Date(2010, time.January, 20), HouseID: velaryon.ID}
		seasmoke := Dragon{Name: "Seasmoke", Power: decimal.RequireFromString("8.0"), Breath: BreathLightning, BirthDate: exercise.Date(1992, time.August, 8), HouseID: velaryon.ID}
		if err := tx.Create(&[]*Dragon{&caraxes, &syrax, &vermax, &seasmoke}).Error; err != nil {
			return fmt.Errorf("creating dragons: %w", err)
		}

		quests := []struct {
			quest   Quest
			dragons []*Dragon
		}{
			{Quest{Name: "Dance of Dragons", Code: "DANC", Reward: 500, StartTime: time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC), HostID: targaryen.ID}, []*Dragon{&caraxes, &seasmoke}},
			{Quest{Name: "Battle of the Gullet", Code: "GUL#", Reward: 250, StartTime: time.Date(2025, time.May, 1, 6, 30, 0, 0, time.UTC), HostID: velaryon.ID}, []*Dragon{&vermax, &syrax}},
		}
		for i := range quests {
			q := &quests[i].quest
			if err := tx.Create(q).Error; err != nil {
				return fmt.Errorf("creating quest %s: %w", q.Name, err)
			}
			if err := tx.Model(q).Association("Dragons").Append(quests[i].dragons); err != nil {
				return fmt.Errorf("assigning dragons to %s: %w", q.Name, err)
			}
		}
		return nil
	})
}
