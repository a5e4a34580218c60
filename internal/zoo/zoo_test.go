package zoo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

func TestAnimal_Age(t *testing.T) {
	a := Animal{BirthDate: exercise.Date(2015, time.March, 10)}
	tests := []struct {
		name string
		day  int
		mon  time.Month
		want int
	}{
		{"day before birthday", 9, time.March, 8},
		{"birthday", 10, time.March, 9},
		{"month before", 28, time.February, 8},
		{"after", 1, time.December, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Age(exercise.Date(2024, tt.mon, tt.day)))
		})
	}
}

func TestDisplayAnimal(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := DisplayAnimal(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, "Meet Leo! Species: Lion, born 2015-03-10. It makes a noise like 'Roar'.\nLion is not at risk.", got)

	got, err = DisplayAnimal(ctx, db, 3)
	require.NoError(t, err)
	assert.Contains(t, got, "Green Turtle is at risk!")
}

func TestCreateKinds(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	var m Mammal
	require.NoError(t, db.Preload("Animal").First(&m, "animal_id = ?", 1).Error)
	assert.Equal(t, "Golden", m.FurColor)
	assert.Equal(t, "Leo", m.Animal.Name)

	var n int64
	require.NoError(t, db.Model(&Bird{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// A failing kind row rolls back its parent animal.
	_, err := CreateMammal(ctx, db, &Animal{Name: "Rex", Species: "Dog", BirthDate: exercise.Today(), Sound: "Woof"},
		"a colour name far too long to fit in fifty characters of fur")
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	require.NoError(t, db.Model(&Animal{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)

	got, err := AnimalAges(ctx, db)
	require.NoError(t, err)
	assert.Contains(t, got, "Leo the Lion (Mammal): ")
	assert.Contains(t, got, "Polly the Parrot (Bird): ")
	assert.Contains(t, got, "Shelly the Green Turtle (Reptile): ")
}

func TestCreateBird_RejectsWingSpanOverflow(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	_, err := CreateBird(ctx, db, &Animal{Name: "Roc", Species: "Giant Eagle", BirthDate: exercise.Today(), Sound: "Screech"},
		decimal.RequireFromString("1234.5"))
	var ve *validate.Error
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, []string{"Ensure that there are no more than 3 digits before the decimal point."}, ve.Messages("wing_span"))

	var n int64
	require.NoError(t, db.Model(&Animal{}).Count(&n).Error)
	assert.Zero(t, n)

	b, err := CreateBird(ctx, db, &Animal{Name: "Zazu", Species: "Hornbill", BirthDate: exercise.Today(), Sound: "Squawk"},
		decimal.RequireFromString("999.99"))
	require.NoError(t, err)
	assert.Equal(t, "999.99", b.WingSpan.StringFixed(2))
}

func TestKeepers(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := AddKeeper(ctx, db, &ZooKeeper{Employee: Employee{FirstName: "Mia", LastName: "Roe", PhoneNumber: "0811111111"}, Specialty: "Birds"}, []uint{2})
	require.NoError(t, err)
	assert.Equal(t, "Zoo keeper Mia Roe manages 1 animals", got)

	got, err = AddKeeper(ctx, db, &ZooKeeper{Employee: Employee{FirstName: "Max", LastName: "Poe", PhoneNumber: "0822222222"}, Specialty: "Fish"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "specialty: Specialty must be a valid choice.", got)

	got, err = Keepers(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "John Doe (Mammals): Leo, Shelly\nMia Roe (Birds): Polly", got)

	// Deleting an animal drops it from its keepers.
	require.NoError(t, db.Delete(&Animal{}, 3).Error)
	got, err = Keepers(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "John Doe (Mammals): Leo\nMia Roe (Birds): Polly", got)
}

func TestVeterinarians(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := Veterinarians(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Anna Smith (VET123): Available\nDr. Peter Brown (VET456): Not Available", got)
}
