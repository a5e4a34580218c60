package dataops

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
)

func populated(t *testing.T) (context.Context, *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))
	return ctx, db
}

func TestPetsAndArtifacts(t *testing.T) {
	ctx, db := populated(t)

	got, err := CreatePet(ctx, db, "Rex", "Dog")
	require.NoError(t, err)
	assert.Equal(t, "Rex is a very cute Dog!", got)

	got, err = CreateArtifact(ctx, db, &Artifact{Name: "Golden Mask", Origin: "Egypt", Age: 3300, Description: "Burial mask", IsMagical: true})
	require.NoError(t, err)
	assert.Equal(t, "The artifact Golden Mask is 3300 years old!", got)

	var sword, helmet Artifact
	require.NoError(t, db.Where("name = ?", "Ancient Sword").First(&sword).Error)
	require.NoError(t, db.Where("name = ?", "Bronze Helmet").First(&helmet).Error)

	renamed, err := RenameArtifact(ctx, db, &sword, "Ancient Shield")
	require.NoError(t, err)
	assert.True(t, renamed)
	renamed, err = RenameArtifact(ctx, db, &helmet, "Iron Helmet")
	require.NoError(t, err)
	assert.False(t, renamed)

	var n int64
	require.NoError(t, db.Model(&Artifact{}).Where("name = ?", "Ancient Shield").Count(&n).Error)
	assert.Equal(t, int64(1), n)

	deleted, err := DeleteAllArtifacts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}

func TestLocations(t *testing.T) {
	ctx, db := populated(t)

	got, err := ShowAllLocations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Varna has a population of 330486\n"+
		"Plovdiv has a population of 346942\n"+
		"Sofia has a population of 1329000", got)

	got, err = GetCapitals(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, NewCapital(ctx, db))
	got, err = GetCapitals(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Sofia", got)

	require.NoError(t, DeleteFirstLocation(ctx, db))
	got, err = GetCapitals(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCars(t *testing.T) {
	assert.Equal(t, int64(46), DigitSum(decimal.RequireFromString("199999.00")))
	assert.Equal(t, "116400.00", DiscountedPrice(decimal.RequireFromString("120000.00")).StringFixed(2))

	ctx, db := populated(t)
	require.NoError(t, ApplyDiscount(ctx, db))

	cars, err := GetRecentCars(ctx, db)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, "Audi Q7 S line", cars[0].Model)
	assert.Equal(t, "145281.00", cars[0].PriceWithDiscount.StringFixed(2))
	assert.Equal(t, "107999.46", cars[1].PriceWithDiscount.StringFixed(2))

	require.NoError(t, DeleteLastCar(ctx, db))
	cars, err = GetRecentCars(ctx, db)
	require.NoError(t, err)
	assert.Len(t, cars, 1)
}

func TestTasks(t *testing.T) {
	ctx, db := populated(t)

	n, err := CompleteOddTasks(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := ShowUnfinishedTasks(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Task - Second Task needs to be done until 2023-11-15!", got)

	n, err = EncodeAndReplace(ctx, db, "Wkh#wdvn", "Simple Task")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var task Task
	require.NoError(t, db.First(&task, 1).Error)
	assert.Equal(t, "The task", task.Description)

	_, err = Encode("\x01")
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestHotelRooms(t *testing.T) {
	ctx, db := populated(t)

	got, err := GetDeluxeRoom(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Deluxe room with number 201 costs 200.00$ per night!\n"+
		"Deluxe room with number 601 costs 400.00$ per night!", got)

	n, err := ReserveFirstRoom(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, IncreaseRoomCapacity(ctx, db))
	var caps []uint
	require.NoError(t, db.Model(&HotelRoom{}).Order("id").Pluck("capacity", &caps).Error)
	assert.Equal(t, []uint{3, 6, 12, 18}, caps)

	n, err = DeleteLastRoom(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteLastRoom(t *testing.T) {
	ctx, db := populated(t)

	n, err := DeleteLastRoom(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestFuse_TruncatesFloatBoost(t *testing.T) {
	a := Character{Name: "A", ClassName: ClassWarrior, Level: 5, Strength: 20, Dexterity: 20, Intelligence: 20, HitPoints: 10}
	b := Character{Name: "B", ClassName: ClassScout, Level: 6, Strength: 25, Dexterity: 25, Intelligence: 25, HitPoints: 15}

	got := Fuse(a, b)
	assert.Equal(t, uint(54), got.Strength)
	assert.Equal(t, uint(62), got.Dexterity)
	assert.Equal(t, uint(67), got.Intelligence)
	assert.Equal(t, uint(5), got.Level)
	assert.Equal(t, uint(25), got.HitPoints)
	assert.Equal(t, "A B", got.Name)
	assert.Equal(t, "Dragon Scale Armor, Excalibur", got.Inventory)
}

func TestCharacters(t *testing.T) {
	ctx, db := populated(t)
	require.NoError(t, UpdateCharacters(ctx, db))

	var gandalf, hector Character
	require.NoError(t, db.First(&gandalf, 1).Error)
	require.NoError(t, db.First(&hector, 2).Error)
	assert.Equal(t, uint(13), gandalf.Level)
	assert.Equal(t, uint(18), gandalf.Intelligence)
	assert.Equal(t, uint(75), hector.HitPoints)
	assert.Equal(t, uint(19), hector.Dexterity)

	fused, err := FuseCharacters(ctx, db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, Character{
		ID:           fused.ID,
		Name:         "Gandalf Hector",
		ClassName:    ClassFusion,
		Level:        12,
		Strength:     54,
		Dexterity:    54,
		Intelligence: 42,
		HitPoints:    175,
		Inventory:    "Bow of the Elven Lords, Amulet of Eternal Wisdom",
	}, *fused)

	_, err = FuseCharacters(ctx, db, 1, 3)
	assert.Error(t, err)

	n, err := GrandStrength(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = DeleteCharacters(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var left []string
	require.NoError(t, db.Model(&Character{}).Pluck("name", &left).Error)
	assert.Equal(t, []string{"Gandalf Hector"}, left)
}
