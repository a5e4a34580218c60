package dataops

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// counted adapts a set operation into a caller printing how many rows it
// touched.
func counted(format string, fn func(context.Context, *gorm.DB) (int64, error)) exercise.RunFunc {
	return func(ctx context.Context, db *gorm.DB, _ []string) (string, error) {
		n, err := fn(ctx, db)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, n), nil
	}
}

// done adapts an operation without output.
func done(msg string, fn func(context.Context, *gorm.DB) error) exercise.RunFunc {
	return func(ctx context.Context, db *gorm.DB, _ []string) (string, error) {
		if err := fn(ctx, db); err != nil {
			return "", err
		}
		return msg, nil
	}
}

func recentCars(ctx context.Context, db *gorm.DB) (string, error) {
	cars, err := GetRecentCars(ctx, db)
	if err != nil {
		return "", fmt.Errorf("listing recent cars: %w", err)
	}
	lines := make([]string, 0, len(cars))
	for _, c := range cars {
		lines = append(lines, fmt.Sprintf("%s: %s", c.Model, c.PriceWithDiscount.StringFixed(2)))
	}
	return exercise.Lines(lines), nil
}

func capitals(ctx context.Context, db *gorm.DB) (string, error) {
	name, err := GetCapitals(ctx, db)
	if err != nil || name != "" {
		return name, err
	}
	return "No capital", nil
}

// Exercise registers the data operations drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "dataops",
		Summary:  "Row and set based create, update and delete operations",
		Models:   []any{&Pet{}, &Artifact{}, &Location{}, &Car{}, &Task{}, &HotelRoom{}, &Character{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "create_pet", Usage: "<name> <species>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 2, "create_pet <name> <species>"); err != nil {
					return "", err
				}
				return CreatePet(ctx, db, args[0], args[1])
			}},
			{Name: "create_artifact", Usage: "<name> <origin> <age> <description> <is-magical>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 5, "create_artifact <name> <origin> <age> <description> <is-magical>"); err != nil {
					return "", err
				}
				age, err := exercise.UintArg(args, 2)
				if err != nil {
					return "", err
				}
				magical, err := strconv.ParseBool(args[4])
				if err != nil {
					return "", fmt.Errorf("%w: is-magical: %v", types.ErrInvalidArgs, err)
				}
				return CreateArtifact(ctx, db, &Artifact{Name: args[0], Origin: args[1], Age: age, Description: args[3], IsMagical: magical})
			}},
			{Name: "rename_artifact", Usage: "<artifact-id> <new-name>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				if err := exercise.NeedArgs(args, 2, "rename_artifact <artifact-id> <new-name>"); err != nil {
					return "", err
				}
				var a Artifact
				if err := store.First(db.WithContext(ctx).Where("id = ?", id), &a); err != nil {
					return "", fmt.Errorf("artifact %d: %w", id, err)
				}
				old := a.Name
				renamed, err := RenameArtifact(ctx, db, &a, args[1])
				if err != nil {
					return "", err
				}
				if !renamed {
					return fmt.Sprintf("The artifact %s keeps its name", old), nil
				}
				return fmt.Sprintf("The artifact %s is now %s", old, a.Name), nil
			}},
			{Name: "delete_all_artifacts", Run: counted("Deleted %d artifacts", DeleteAllArtifacts)},
			{Name: "show_all_locations", Run: exercise.NoArgs(ShowAllLocations)},
			{Name: "new_capital", Run: done("First location is now a capital", NewCapital)},
			{Name: "get_capitals", Run: exercise.NoArgs(capitals)},
			{Name: "delete_first_location", Run: done("First location deleted", DeleteFirstLocation)},
			{Name: "get_recent_cars", Run: exercise.NoArgs(recentCars)},
			{Name: "apply_discount", Run: done("Discounts applied", ApplyDiscount)},
			{Name: "delete_last_car", Run: done("Last car deleted", DeleteLastCar)},
			{Name: "show_unfinished_tasks", Run: exercise.NoArgs(ShowUnfinishedTasks)},
			{Name: "complete_odd_tasks", Run: counted("Completed %d tasks", CompleteOddTasks)},
			{Name: "encode_and_replace", Usage: "<task-title> <text...>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 2, "encode_and_replace <task-title> <text...>"); err != nil {
					return "", err
				}
				n, err := EncodeAndReplace(ctx, db, strings.Join(args[1:], " "), args[0])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Encoded the description of %d tasks", n), nil
			}},
			{Name: "get_deluxe_room", Run: exercise.NoArgs(GetDeluxeRoom)},
			{Name: "increase_room_capacity", Run: done("Room capacities increased", IncreaseRoomCapacity)},
			{Name: "reserve_first_room", Run: counted("Reserved %d rooms", ReserveFirstRoom)},
			{Name: "delete_last_room", Run: counted("Deleted %d rooms", DeleteLastRoom)},
			{Name: "update_characters", Run: done("Characters updated", UpdateCharacters)},
			{Name: "fuse_characters", Usage: "<first-id> <second-id>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				first, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				second, err := exercise.UintArg(args, 1)
				if err != nil {
					return "", err
				}
				c, err := FuseCharacters(ctx, db, first, second)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s the %s, level %d", c.Name, c.ClassName, c.Level), nil
			}},
			{Name: "grand_dexterity", Run: counted("Dexterity set for %d characters", GrandDexterity)},
			{Name: "grand_intelligence", Run: counted("Intelligence set for %d characters", GrandIntelligence)},
			{Name: "grand_strength", Run: counted("Strength set for %d characters", GrandStrength)},
			{Name: "delete_characters", Run: counted("Deleted %d characters", DeleteCharacters)},
		},
	}
}

// Populate inserts rows for every model.
func Populate(ctx context.Context, db *gorm.DB) error {
	price := decimal.RequireFromString
	rows := []any{
		&[]*Pet{{Name: "Buddy", Species: "Dog"}, {Name: "Whiskers", Species: "Cat"}},
		&[]*Artifact{
			{Name: "Ancient Sword", Origin: "Lost Kingdom", Age: 500, Description: "A legendary sword with a rich history", IsMagical: true},
			{Name: "Crystal Amulet", Origin: "Mystic Forest", Age: 300, Description: "A magical amulet believed to bring good fortune", IsMagical: true},
			{Name: "Bronze Helmet", Origin: "Old Port", Age: 120, Description: "Worn by a harbour guard"},
		},
		&[]*Location{
			{Name: "Sofia", Region: "Sofia Region", Population: 1329000, Description: "The capital of Bulgaria and the largest city in the country"},
			{Name: "Plovdiv", Region: "Plovdiv Region", Population: 346942, Description: "The second-largest city in Bulgaria with a rich historical heritage"},
			{Name: "Varna", Region: "Varna Region", Population: 330486, Description: "A city known for its sea breeze and beautiful beaches on the Black Sea"},
		},
		&[]*Car{
			{Model: "Mercedes C63 AMG", Year: 2019, Color: "white", Price: price("120000.00")},
			{Model: "Audi Q7 S line", Year: 2023, Color: "black", Price: price("183900.00")},
			{Model: "Chevrolet Corvette", Year: 2021, Color: "dark grey", Price: price("199999.00")},
		},
		&[]*Task{
			{Title: "Simple Task", Description: "This is a sample task description", DueDate: exercise.Date(2023, time.October, 31)},
			{Title: "Second Task", Description: "Another task", DueDate: exercise.Date(2023, time.November, 15)},
			{Title: "Third Task", Description: "One more task", DueDate: exercise.Date(2023, time.December, 1)},
		},
		&[]*HotelRoom{
			{RoomNumber: 101, RoomType: RoomStandard, Capacity: 2, Amenities: "Tv", PricePerNight: price("100.00")},
			{RoomNumber: 201, RoomType: RoomDeluxe, Capacity: 3, Amenities: "Wi-Fi", PricePerNight: price("200.00")},
			{RoomNumber: 501, RoomType: RoomDeluxe, Capacity: 6, Amenities: "Jacuzzi", PricePerNight: price("400.00")},
			{RoomNumber: 601, RoomType: RoomDeluxe, Capacity: 6, Amenities: "Jacuzzi", PricePerNight: price("400.00"), IsReserved: true},
		},
		&[]*Character{
			{Name: "Gandalf", ClassName: ClassMage, Level: 10, Strength: 15, Dexterity: 20, Intelligence: 25, HitPoints: 100, Inventory: "Staff of Magic, Spellbook"},
			{Name: "Hector", ClassName: ClassWarrior, Level: 12, Strength: 30, Dexterity: 15, Intelligence: 10, HitPoints: 150, Inventory: "Sword of Troy, Shield of Protection"},
			{Name: "Ezio", ClassName: ClassAssassin, Level: 9, Strength: 20, Dexterity: 30, Intelligence: 15, HitPoints: 90, Inventory: "Hidden Blade"},
			{Name: "Legolas", ClassName: ClassScout, Level: 11, Strength: 18, Dexterity: 28, Intelligence: 16, HitPoints: 95, Inventory: "Bow, Quiver"},
		},
	}
	db = db.WithContext(ctx)
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			return fmt.Errorf("populating dataops: %w", err)
		}
	}
	return nil
}
