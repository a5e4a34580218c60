package zoo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

const animalUsage = "<name> <species> <birth-date> <sound>"

func parseAnimal(args []string, usage string) (*Animal, error) {
	if err := exercise.NeedArgs(args, 5, usage); err != nil {
		return nil, err
	}
	born, err := exercise.ParseDate(args[2])
	if err != nil {
		return nil, err
	}
	return &Animal{Name: args[0], Species: args[1], BirthDate: born, Sound: args[3]}, nil
}

// Exercise registers the zoo drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:    "zoo",
		Summary: "Multi-table animals, abstract staff base and a display proxy",
		Models: []any{
			&Animal{}, &Mammal{}, &Bird{}, &Reptile{},
			&ZooKeeper{}, &Veterinarian{},
		},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "add_mammal", Usage: animalUsage + " <fur-color>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				a, err := parseAnimal(args, "add_mammal "+animalUsage+" <fur-color>")
				if err != nil {
					return "", err
				}
				if _, err := CreateMammal(ctx, db, a, args[4]); err != nil {
					return exercise.Report(err)
				}
				return fmt.Sprintf("Mammal %s created", a.Name), nil
			}},
			{Name: "add_bird", Usage: animalUsage + " <wing-span>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				a, err := parseAnimal(args, "add_bird "+animalUsage+" <wing-span>")
				if err != nil {
					return "", err
				}
				span, err := decimal.NewFromString(args[4])
				if err != nil {
					return "", fmt.Errorf("%w: wing span: %v", types.ErrInvalidArgs, err)
				}
				if _, err := CreateBird(ctx, db, a, span); err != nil {
					return exercise.Report(err)
				}
				return fmt.Sprintf("Bird %s created", a.Name), nil
			}},
			{Name: "add_reptile", Usage: animalUsage + " <scale-type>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				a, err := parseAnimal(args, "add_reptile "+animalUsage+" <scale-type>")
				if err != nil {
					return "", err
				}
				if _, err := CreateReptile(ctx, db, a, args[4]); err != nil {
					return exercise.Report(err)
				}
				return fmt.Sprintf("Reptile %s created", a.Name), nil
			}},
			{Name: "display_animal", Usage: "<animal-id>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				return DisplayAnimal(ctx, db, id)
			}},
			{Name: "animal_ages", Run: exercise.NoArgs(AnimalAges)},
			{Name: "add_keeper", Usage: "<first> <last> <phone> <specialty> [animal-id...]", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 4, "add_keeper <first> <last> <phone> <specialty> [animal-id...]"); err != nil {
					return "", err
				}
				var ids []uint
				for i := 4; i < len(args); i++ {
					id, err := exercise.UintArg(args, i)
					if err != nil {
						return "", err
					}
					ids = append(ids, id)
				}
				k := &ZooKeeper{Employee: Employee{FirstName: args[0], LastName: args[1], PhoneNumber: args[2]}, Specialty: args[3]}
				return AddKeeper(ctx, db, k, ids)
			}},
			{Name: "keepers", Run: exercise.NoArgs(Keepers)},
			{Name: "add_veterinarian", Usage: "<first> <last> <phone> <license> <available:true|false>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 5, "add_veterinarian <first> <last> <phone> <license> <available>"); err != nil {
					return "", err
				}
				available := args[4] != "false"
				v := &Veterinarian{Employee: Employee{FirstName: args[0], LastName: args[1], PhoneNumber: args[2]}, LicenseNumber: args[3], Availability: &available}
				return AddVeterinarian(ctx, db, v)
			}},
			{Name: "veterinarians", Run: exercise.NoArgs(Veterinarians)},
		},
	}
}

// Populate inserts one animal of each kind, a keeper and two vets.
func Populate(ctx context.Context, db *gorm.DB) error {
	leo := &Animal{Name: "Leo", Species: "Lion", BirthDate: exercise.Date(2015, time.March, 10), Sound: "Roar"}
	if _, err := CreateMammal(ctx, db, leo, "Golden"); err != nil {
		return err
	}
	polly := &Animal{Name: "Polly", Species: "Parrot", BirthDate: exercise.Date(2019, time.July, 1), Sound: "Squawk"}
	if _, err := CreateBird(ctx, db, polly, decimal.RequireFromString("0.45")); err != nil {
		return err
	}
	shelly := &Animal{Name: "Shelly", Species: "Green Turtle", BirthDate: exercise.Date(1990, time.May, 20), Sound: "Hiss"}
	if _, err := CreateReptile(ctx, db, shelly, "Scutes"); err != nil {
		return err
	}
	db = db.WithContext(ctx)
	keeper := &ZooKeeper{
		Employee:       Employee{FirstName: "John", LastName: "Doe", PhoneNumber: "0899999999"},
		Specialty:      "Mammals",
		ManagedAnimals: []Animal{*leo, *shelly},
	}
	if err := db.Omit("ManagedAnimals.*").Create(keeper).Error; err != nil {
		return fmt.Errorf("creating keeper: %w", err)
	}
	unavailable := false
	vets := []*Veterinarian{
		{Employee: Employee{FirstName: "Anna", LastName: "Smith", PhoneNumber: "0888888888"}, LicenseNumber: "VET123"},
		{Employee: Employee{FirstName: "Peter", LastName: "Brown", PhoneNumber: "0877777777"}, LicenseNumber: "VET456", Availability: &unavailable},
	}
	if err := db.Create(&vets).Error; err != nil {
		return fmt.Errorf("creating veterinarians: %w", err)
	}
	return nil
}
