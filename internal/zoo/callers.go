package zoo

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// createKind inserts the parent animal and then the kind row keyed by it,
// in one transaction.
func createKind(ctx context.Context, db *gorm.DB, a *Animal, row any, setID func(uint)) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		setID(a.ID)
		return tx.Omit(clause.Associations).Create(row).Error
	})
}

// CreateMammal stores a and its mammal row.
func CreateMammal(ctx context.Context, db *gorm.DB, a *Animal, furColor string) (*Mammal, error) {
	m := &Mammal{FurColor: furColor}
	if err := createKind(ctx, db, a, m, func(id uint) { m.AnimalID = id }); err != nil {
		return nil, fmt.Errorf("creating mammal %s: %w", a.Name, err)
	}
	m.Animal = a
	return m, nil
}

// CreateBird stores a and its bird row.
func CreateBird(ctx context.Context, db *gorm.DB, a *Animal, wingSpan decimal.Decimal) (*Bird, error) {
	b := &Bird{WingSpan: wingSpan}
	if err := createKind(ctx, db, a, b, func(id uint) { b.AnimalID = id }); err != nil {
		return nil, fmt.Errorf("creating bird %s: %w", a.Name, err)
	}
	b.Animal = a
	return b, nil
}

// CreateReptile stores a and its reptile row.
func CreateReptile(ctx context.Context, db *gorm.DB, a *Animal, scaleType string) (*Reptile, error) {
	r := &Reptile{ScaleType: scaleType}
	if err := createKind(ctx, db, a, r, func(id uint) { r.AnimalID = id }); err != nil {
		return nil, fmt.Errorf("creating reptile %s: %w", a.Name, err)
	}
	r.Animal = a
	return r, nil
}

// DisplayAnimal shows the visitor card of animal id.
func DisplayAnimal(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var z ZooDisplayAnimal
	if err := store.First(db.WithContext(ctx).Where("id = ?", id), &z); err != nil {
		return "", fmt.Errorf("animal %d: %w", id, err)
	}
	return exercise.Lines([]string{z.DisplayInfo(), z.IsEndangered()}), nil
}

// AnimalAges lists every animal with its kind and age on the current day.
func AnimalAges(ctx context.Context, db *gorm.DB) (string, error) {
	var rows []struct {
		Animal
		Kind string
	}
	err := db.WithContext(ctx).Model(&Animal{}).
		Select(`animals.*, CASE
			WHEN mammals.animal_id IS NOT NULL THEN 'Mammal'
			WHEN birds.animal_id IS NOT NULL THEN 'Bird'
			WHEN reptiles.animal_id IS NOT NULL THEN 'Reptile'
			ELSE 'Animal' END AS kind`).
		Joins("LEFT JOIN mammals ON mammals.animal_id = animals.id").
		Joins("LEFT JOIN birds ON birds.animal_id = animals.id").
		Joins("LEFT JOIN reptiles ON reptiles.animal_id = animals.id").
		Order("animals.id").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("listing animals: %w", err)
	}
	today := exercise.Today()
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s the %s (%s): %d years", r.Name, r.Species, r.Kind, r.Age(today)))
	}
	return exercise.Lines(lines), nil
}

// AddKeeper stores a keeper managing animalIDs.
func AddKeeper(ctx context.Context, db *gorm.DB, k *ZooKeeper, animalIDs []uint) (string, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(animalIDs) > 0 {
			if err := tx.Where("id IN ?", animalIDs).Order("id").Find(&k.ManagedAnimals).Error; err != nil {
				return err
			}
			if len(k.ManagedAnimals) != len(animalIDs) {
				return fmt.Errorf("%w: unknown animal among %v", types.ErrNotFound, animalIDs)
			}
		}
		return tx.Omit("ManagedAnimals.*").Create(k).Error
	})
	if err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("Zoo keeper %s %s manages %d animals", k.FirstName, k.LastName, len(k.ManagedAnimals)), nil
}

// Keepers lists keepers with the names of the animals they manage.
func Keepers(ctx context.Context, db *gorm.DB) (string, error) {
	var ks []ZooKeeper
	err := db.WithContext(ctx).
		Preload("ManagedAnimals", func(db *gorm.DB) *gorm.DB { return db.Order("animals.name") }).
		Order("id").Find(&ks).Error
	if err != nil {
		return "", fmt.Errorf("listing keepers: %w", err)
	}
	lines := make([]string, 0, len(ks))
	for _, k := range ks {
		names := make([]string, 0, len(k.ManagedAnimals))
		for _, a := range k.ManagedAnimals {
			names = append(names, a.Name)
		}
		lines = append(lines, fmt.Sprintf("%s %s (%s): %s", k.FirstName, k.LastName, k.Specialty, strings.Join(names, ", ")))
	}
	return exercise.Lines(lines), nil
}

// AddVeterinarian stores a veterinarian.
func AddVeterinarian(ctx context.Context, db *gorm.DB, v *Veterinarian) (string, error) {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("Dr. %s %s (%s): %s", v.FirstName, v.LastName, v.LicenseNumber, v.AvailabilityLabel()), nil
}

// Veterinarians lists veterinarians with their availability.
func Veterinarians(ctx context.Context, db *gorm.DB) (string, error) {
	var vs []Veterinarian
	if err := db.WithContext(ctx).Order("id").Find(&vs).Error; err != nil {
		return "", fmt.Errorf("listing veterinarians: %w", err)
	}
	lines := make([]string, 0, len(vs))
	for _, v := range vs {
		lines = append(lines, fmt.Sprintf("Dr. %s %s (%s): %s", v.FirstName, v.LastName, v.LicenseNumber, v.AvailabilityLabel()))
	}
	return exercise.Lines(lines), nil
}
