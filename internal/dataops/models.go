// Package dataops is the data operations drill: creating, reading,
// updating and deleting rows one at a time and as sets.
package dataops

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Pet is a named animal.
type Pet struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:40;not null" json:"name" validate:"required,max=40"`
	Species string `gorm:"size:40;not null" json:"species" validate:"required,max=40"`
}

func (p *Pet) BeforeSave(*gorm.DB) error { return validate.Struct(p, nil) }

// Artifact is an ancient object.
type Artifact struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:70;not null;uniqueIndex" json:"name" validate:"required,max=70"`
	Origin      string `gorm:"size:70;not null" json:"origin" validate:"max=70"`
	Age         uint   `gorm:"not null" json:"age"`
	Description string `gorm:"type:text;not null" json:"description"`
	IsMagical   bool   `gorm:"not null" json:"is_magical"`
}

func (a *Artifact) BeforeSave(*gorm.DB) error { return validate.Struct(a, nil) }

// Location is a populated place.
type Location struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Region      string `gorm:"size:50;not null" json:"region" validate:"max=50"`
	Population  uint   `gorm:"not null" json:"population"`
	Description string `gorm:"type:text;not null" json:"description"`
	IsCapital   bool   `gorm:"not null" json:"is_capital"`
}

func (l *Location) BeforeSave(*gorm.DB) error { return validate.Struct(l, nil) }

// Car is a priced car model.
type Car struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Model             string          `gorm:"size:40;not null" json:"model" validate:"required,max=40"`
	Year              uint            `gorm:"not null" json:"year"`
	Color             string          `gorm:"size:40;not null" json:"color" validate:"max=40"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0,decimal=10:2"`
	PriceWithDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_with_discount" validate:"gte=0,decimal=10:2"`
}

func (c *Car) BeforeSave(*gorm.DB) error { return validate.Struct(c, nil) }

// Task is a to-do item.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:25;not null" json:"title" validate:"required,max=25"`
	Description string         `gorm:"type:text;not null" json:"description"`
	DueDate     datatypes.Date `gorm:"not null" json:"due_date"`
	IsFinished  bool           `gorm:"not null" json:"is_finished"`
}

func (t *Task) BeforeSave(*gorm.DB) error { return validate.Struct(t, nil) }

// Room types.
const (
	RoomStandard = "Standard"
	RoomDeluxe   = "Deluxe"
	RoomSuite    = "Suite"
)

// HotelRoom is a numbered hotel room.
type HotelRoom struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RoomNumber    uint            `gorm:"not null;uniqueIndex" json:"room_number"`
	RoomType      string          `gorm:"size:20;not null" json:"room_type" validate:"oneof=Standard Deluxe Suite"`
	Capacity      uint            `gorm:"not null" json:"capacity"`
	Amenities     string          `gorm:"type:text;not null" json:"amenities"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price_per_night" validate:"gte=0,decimal=8:2"`
	IsReserved    bool            `gorm:"not null" json:"is_reserved"`
}

func (r *HotelRoom) BeforeSave(*gorm.DB) error { return validate.Struct(r, nil) }

// Character classes.
const (
	ClassMage     = "Mage"
	ClassWarrior  = "Warrior"
	ClassAssassin = "Assassin"
	ClassScout    = "Scout"
	ClassFusion   = "Fusion"
)

// EmptyInventory marks a character whose inventory was cleared.
const EmptyInventory = "The inventory is empty"

// Character is a game character.
type Character struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	ClassName    string `gorm:"size:20;not null" json:"class_name" validate:"oneof=Mage Warrior Assassin Scout Fusion"`
	Level        uint   `gorm:"not null" json:"level"`
	Strength     uint   `gorm:"not null" json:"strength"`
	Dexterity    uint   `gorm:"not null" json:"dexterity"`
	Intelligence uint   `gorm:"not null" json:"intelligence"`
	HitPoints    uint   `gorm:"not null" json:"hit_points"`
	Inventory    string `gorm:"type:text;not null" json:"inventory"`
}

func (c *Character) BeforeSave(*gorm.DB) error { return validate.Struct(c, nil) }
