package dragons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

const noData = "No relevant data."

// GetHouses lists houses whose name or motto starts with search.
func GetHouses(ctx context.Context, db *gorm.DB, search string) (string, error) {
	const none = "No houses match your search."
	if search == "" {
		return none, nil
	}

	nameCond, nameArgs := store.StartsWithExpr("name", search)
	mottoCond, mottoArgs := store.StartsWithExpr("motto", search)

	var houses []House
	err := db.WithContext(ctx).
		Where(nameCond+" OR "+mottoCond, append(nameArgs, mottoArgs...)...).
		Order("id").
		Find(&houses).Error
	if err != nil {
		return "", fmt.Errorf("searching houses: %w", err)
	}
	if len(houses) == 0 {
		return none, nil
	}

	lines := make([]string, 0, len(houses))
	for _, h := range houses {
		motto := "N/A"
		if h.Motto != nil && *h.Motto != "" {
			motto = *h.Motto
		}
		lines = append(lines, fmt.Sprintf("House: %s, wins: %d, motto: %s", h.Name, h.Wins, motto))
	}
	return exercise.Lines(lines), nil
}

// GetMostDangerousHouse reports the house with the most dragons.
func GetMostDangerousHouse(ctx context.Context, db *gorm.DB) (string, error) {
	rows, err := HousesByDragonsCount(db.WithContext(ctx).Limit(1))
	if err != nil {
		return "", fmt.Errorf("counting dragons per house: %w", err)
	}
	if len(rows) == 0 {
		return noData, nil
	}
	h := rows[0]
	status := "not ruling"
	if h.IsRuling {
		status = "ruling"
	}
	return fmt.Sprintf("The most dangerous house is the House of %s with %d dragons. Currently %s the kingdom.",
		h.Name, h.TotalDragons, status), nil
}

// GetMostPowerfulDragon reports the strongest healthy dragon.
func GetMostPowerfulDragon(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	var d Dragon
	err := store.First(db.Preload("House").Where("is_healthy = ?", true).Order("power DESC, name"), &d)
	if errors.Is(err, types.ErrNotFound) {
		return noData, nil
	}
	if err != nil {
		return "", fmt.Errorf("loading most powerful dragon: %w", err)
	}

	var quests int64
	if err := db.Table("quest_dragons").Where("dragon_id = ?", d.ID).Count(&quests).Error; err != nil {
		return "", fmt.Errorf("counting quests of %s: %w", d.Name, err)
	}

	return fmt.Sprintf("The most powerful healthy dragon is %s with a power level of %s, breath type %s, and %d wins, "+
		"coming from the house of %s. Currently participating in %d quests.",
		d.Name, d.Power.StringFixed(1), d.Breath, d.Wins, d.House.Name, quests), nil
}

// UpdateDragonsData heals every sick dragon above the minimum power at the
// cost of 0.1 power.
func UpdateDragonsData(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	res := store.Bulk(db).Model(&Dragon{}).
		Where("power > ? AND is_healthy = ?", 1.0, false).
		UpdateColumns(map[string]any{
			"is_healthy": true,
			"power":      gorm.Expr("ROUND(power - 0.1, 1)"),
		})
	if res.Error != nil {
		return "", fmt.Errorf("healing dragons: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "No changes in dragons data.", nil
	}

	var minPower float64
	if err := db.Model(&Dragon{}).Select("MIN(power)").Scan(&minPower).Error; err != nil {
		return "", fmt.Errorf("finding minimum power: %w", err)
	}
	return fmt.Sprintf("The data for %d dragon/s has been changed. The minimum power level among all dragons is %s",
		res.RowsAffected, exercise.Fixed(minPower, 1)), nil
}

// questDragons returns the dragons on a quest in the given order.
func questDragons(db *gorm.DB, questID uint, order string) ([]Dragon, error) {
	var ds []Dragon
	err := db.Model(&Dragon{}).
		Select("dragons.*").
		Joins("JOIN quest_dragons ON quest_dragons.dragon_id = dragons.id").
		Where("quest_dragons.quest_id = ?", questID).
		Order(order).
		Find(&ds).Error
	return ds, err
}

// GetEarliestQuest describes the quest that starts first.
func GetEarliestQuest(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	var q Quest
	err := store.First(db.Preload("Host").Order("start_time, id"), &q)
	if errors.Is(err, types.ErrNotFound) {
		return noData, nil
	}
	if err != nil {
		return "", fmt.Errorf("loading earliest quest: %w", err)
	}

	ds, err := questDragons(db, q.ID, "dragons.power, dragons.name")
	if err != nil {
		return "", fmt.Errorf("loading dragons of %s: %w", q.Name, err)
	}
	dragons, avg := "No dragons", "0.00"
	if len(ds) > 0 {
		names := make([]string, 0, len(ds))
		var sum float64
		for _, d := range ds {
			names = append(names, d.Name)
			sum += d.Power.InexactFloat64()
		}
		dragons = strings.Join(names, "*")
		avg = exercise.Fixed(sum/float64(len(ds)), 2)
	}

	start := q.StartTime
	return fmt.Sprintf("The earliest quest is: %s, code: %s, start date: %d.%d.%d, host: %s. "+
		"Dragons: %s. Average dragons power level: %s",
		q.Name, q.Code, start.Day(), int(start.Month()), start.Year(), q.Host.Name, dragons, avg), nil
}

// AnnounceQuestWinner awards the quest to its most powerful dragon, counts
// the win for the dragon and its house and removes the quest.
func AnnounceQuestWinner(ctx context.Context, db *gorm.DB, code string) (string, error) {
	var out string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q Quest
		err := store.First(tx.Where("code = ?", code), &q)
		if errors.Is(err, types.ErrNotFound) {
			out = "No such quest."
			return nil
		}
		if err != nil {
			return err
		}

		ds, err := questDragons(tx, q.ID, "dragons.power DESC, dragons.name")
		if err != nil {
			return fmt.Errorf("loading dragons of %s: %w", q.Name, err)
		}
		if len(ds) == 0 {
			out = fmt.Sprintf("The quest: %s has no dragons.", q.Name)
			return nil
		}
		winner := ds[0]

		winner.Wins++
		if err := tx.Save(&winner).Error; err != nil {
			return fmt.Errorf("saving %s: %w", winner.Name, err)
		}
		var house House
		if err := store.First(tx.Where("id = ?", winner.HouseID), &house); err != nil {
			return fmt.Errorf("loading house of %s: %w", winner.Name, err)
		}
		house.Wins++
		if err := tx.Save(&house).Error; err != nil {
			return fmt.Errorf("saving %s: %w", house.Name, err)
		}
		if err := tx.Model(&q).Association("Dragons").Clear(); err != nil {
			return fmt.Errorf("releasing dragons of %s: %w", q.Name, err)
		}
		if err := tx.Delete(&q).Error; err != nil {
			return fmt.Errorf("deleting quest %s: %w", q.Name, err)
		}

		out = fmt.Sprintf("The quest: %s has been won by dragon %s from house %s. "+
			"The number of wins has been updated as follows: %d total wins for the dragon and %d total wins for the house. "+
			"The house was awarded with %s coins.",
			q.Name, winner.Name, house.Name, winner.Wins, house.Wins, exercise.Fixed(q.Reward, 2))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("announcing winner of %s: %w", code, err)
	}
	return out, nil
}
