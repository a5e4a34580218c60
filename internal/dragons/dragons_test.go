package dragons

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

func populated(t *testing.T) *gorm.DB {
	t.Helper()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(context.Background(), db))
	return db
}

func TestValidation(t *testing.T) {
	db := populated(t)

	var house House
	require.NoError(t, db.Where("name = ?", "Targaryen").First(&house).Error)

	err := db.Create(&Quest{Name: "Short", Code: "AB1", HostID: house.ID}).Error
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Enter a valid value."}, ve.Messages("code"))

	err = db.Create(&Dragon{Name: "Drogon", Breath: "Acid", HouseID: house.ID}).Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Value 'Acid' is not a valid choice."}, ve.Messages("breath"))

	err = store.TranslateError(db.Create(&House{Name: "Targaryen"}).Error)
	assert.True(t, errors.Is(err, types.ErrDuplicate))
}

func TestDragonDefaults(t *testing.T) {
	db := populated(t)

	var house House
	require.NoError(t, db.Where("name = ?", "Baratheon").First(&house).Error)

	d := Dragon{Name: "Sheepstealer", HouseID: house.ID}
	require.NoError(t, db.Create(&d).Error)

	var got Dragon
	require.NoError(t, db.First(&got, d.ID).Error)
	assert.True(t, got.Healthy())
	assert.Equal(t, BreathUnknown, got.Breath)
	assert.Equal(t, "1.0", got.Power.StringFixed(1))
}

func TestCallers(t *testing.T) {
	ctx := context.Background()
	db := populated(t)

	tests := []struct {
		name string
		run  func() (string, error)
		want string
	}{
		{"houses empty", func() (string, error) { return GetHouses(ctx, db, "") }, "No houses match your search."},
		{"houses by name or motto", func() (string, error) { return GetHouses(ctx, db, "T") },
			"House: Targaryen, wins: 3, motto: Fire and Blood\nHouse: Velaryon, wins: 1, motto: The Old, the True, the Brave"},
		{"houses no motto", func() (string, error) { return GetHouses(ctx, db, "Bar") }, "House: Baratheon, wins: 0, motto: N/A"},
		{"houses case sensitive", func() (string, error) { return GetHouses(ctx, db, "t") }, "No houses match your search."},
		{"most dangerous", func() (string, error) { return GetMostDangerousHouse(ctx, db) },
			"The most dangerous house is the House of Targaryen with 2 dragons. Currently ruling the kingdom."},
		{"most powerful", func() (string, error) { return GetMostPowerfulDragon(ctx, db) },
			"The most powerful healthy dragon is Caraxes with a power level of 9.5, breath type Fire, and 0 wins, " +
				"coming from the house of Targaryen. Currently participating in 1 quests."},
		{"earliest quest", func() (string, error) { return GetEarliestQuest(ctx, db) },
			"The earliest quest is: Dance of Dragons, code: DANC, start date: 10.3.2025, host: Targaryen. " +
				"Dragons: Seasmoke*Caraxes. Average dragons power level: 8.75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallers_Empty(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	for _, fn := range []func(context.Context, *gorm.DB) (string, error){
		GetMostDangerousHouse, GetMostPowerfulDragon, GetEarliestQuest,
	} {
		got, err := fn(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, "No relevant data.", got)
	}
}

func TestUpdateDragonsData(t *testing.T) {
	ctx := context.Background()
	db := populated(t)

	got, err := UpdateDragonsData(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "The data for 1 dragon/s has been changed. The minimum power level among all dragons is 5.4", got)

	var vermax Dragon
	require.NoError(t, db.Where("name = ?", "Vermax").First(&vermax).Error)
	assert.True(t, vermax.Healthy())

	got, err = UpdateDragonsData(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "No changes in dragons data.", got)
}

func TestAnnounceQuestWinner(t *testing.T) {
	ctx := context.Background()
	db := populated(t)

	got, err := AnnounceQuestWinner(ctx, db, "NOPE")
	require.NoError(t, err)
	assert.Equal(t, "No such quest.", got)

	got, err = AnnounceQuestWinner(ctx, db, "DANC")
	require.NoError(t, err)
	assert.Equal(t, "The quest: Dance of Dragons has been won by dragon Caraxes from house Targaryen. "+
		"The number of wins has been updated as follows: 1 total wins for the dragon and 4 total wins for the house. "+
		"The house was awarded with 500.00 coins.", got)

	var quests int64
	require.NoError(t, db.Model(&Quest{}).Count(&quests).Error)
	assert.Equal(t, int64(1), quests)

	var links int64
	require.NoError(t, db.Table("quest_dragons").Count(&links).Error)
	assert.Equal(t, int64(2), links)

	got, err = GetEarliestQuest(ctx, db)
	require.NoError(t, err)
	assert.Contains(t, got, "Battle of the Gullet")
}
