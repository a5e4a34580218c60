// Package zoo is the model inheritance lab: animals specialised into one
// table per kind, zoo staff sharing an abstract employee base and a display
// proxy over animals.
package zoo

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Animal is the parent row of every kind of animal.
type Animal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Species   string         `gorm:"size:100;not null" json:"species" validate:"required,max=100"`
	BirthDate datatypes.Date `gorm:"not null" json:"birth_date"`
	Sound     string         `gorm:"size:100;not null" json:"sound" validate:"max=100"`
}

func (a *Animal) BeforeSave(*gorm.DB) error { return validate.Struct(a, nil) }

// Age returns the animal's age in whole years on day.
func (a *Animal) Age(day datatypes.Date) int {
	today, born := time.Time(day), time.Time(a.BirthDate)
	years := today.Year() - born.Year()
	if today.Month() < born.Month() || (today.Month() == born.Month() && today.Day() < born.Day()) {
		years--
	}
	return years
}

// Mammal extends Animal.
type Mammal struct {
	AnimalID uint    `gorm:"primaryKey;autoIncrement:false" json:"animal_id"`
	Animal   *Animal `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty" validate:"-"`
	FurColor string  `gorm:"size:50;not null" json:"fur_color" validate:"max=50"`
}

func (m *Mammal) BeforeSave(*gorm.DB) error { return validate.Struct(m, nil) }

// Bird extends Animal.
type Bird struct {
	AnimalID uint            `gorm:"primaryKey;autoIncrement:false" json:"animal_id"`
	Animal   *Animal         `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty" validate:"-"`
	WingSpan decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"wing_span" validate:"decimal=5:2"`
}

func (b *Bird) BeforeSave(*gorm.DB) error { return validate.Struct(b, nil) }

// Reptile extends Animal.
type Reptile struct {
	AnimalID  uint    `gorm:"primaryKey;autoIncrement:false" json:"animal_id"`
	Animal    *Animal `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty" validate:"-"`
	ScaleType string  `gorm:"size:50;not null" json:"scale_type" validate:"max=50"`
}

func (r *Reptile) BeforeSave(*gorm.DB) error { return validate.Struct(r, nil) }

// Employee holds the fields shared by zoo staff.
type Employee struct {
	FirstName   string `gorm:"size:50;not null" json:"first_name" validate:"required,max=50"`
	LastName    string `gorm:"size:50;not null" json:"last_name" validate:"required,max=50"`
	PhoneNumber string `gorm:"size:10;not null" json:"phone_number" validate:"max=10"`
}

// Specialties a zoo keeper may have.
var Specialties = []string{"Mammals", "Birds", "Reptiles", "Others"}

// ZooKeeper looks after a set of animals.
type ZooKeeper struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Employee
	Specialty      string   `gorm:"size:10;not null" json:"specialty"`
	ManagedAnimals []Animal `gorm:"many2many:zoo_keeper_managed_animals;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// Clean rejects an unknown specialty.
func (z *ZooKeeper) Clean() error {
	if !slices.Contains(Specialties, z.Specialty) {
		return validate.NewError("specialty", "Specialty must be a valid choice.")
	}
	return nil
}

func (z *ZooKeeper) BeforeSave(*gorm.DB) error {
	e := validate.From(validate.Struct(z, nil))
	e.Merge(z.Clean())
	return e.OrNil()
}

// Veterinarian treats animals. Availability defaults to available.
type Veterinarian struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Employee
	LicenseNumber string `gorm:"size:10;not null" json:"license_number" validate:"max=10"`
	Availability  *bool  `gorm:"not null;default:true" json:"availability"`
}

func (v *Veterinarian) BeforeSave(*gorm.DB) error { return validate.Struct(v, nil) }

// AvailabilityLabel renders the availability choice.
func (v *Veterinarian) AvailabilityLabel() string {
	if v.Availability == nil || *v.Availability {
		return "Available"
	}
	return "Not Available"
}

// ZooDisplayAnimal reads the animals table for visitor displays.
type ZooDisplayAnimal struct {
	Animal
}

func (ZooDisplayAnimal) TableName() string { return "animals" }

// EndangeredSpecies are flagged as at risk.
var EndangeredSpecies = []string{"Cross River Gorilla", "Orangutan", "Green Turtle"}

// DisplayInfo introduces the animal.
func (z *ZooDisplayAnimal) DisplayInfo() string {
	return fmt.Sprintf("Meet %s! Species: %s, born %s. It makes a noise like '%s'.",
		z.Name, z.Species, exercise.FormatDate(z.BirthDate), z.Sound)
}

// IsEndangered reports the species' risk status.
func (z *ZooDisplayAnimal) IsEndangered() string {
	if slices.Contains(EndangeredSpecies, z.Species) {
		return z.Species + " is at risk!"
	}
	return z.Species + " is not at risk."
}
