// Package inventory is the data migrations drill: two tables whose derived
// columns are backfilled by named, run-once data migrations.
package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Item is a game item graded by price.
type Item struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	Name   string          `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Price  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0,decimal=10:2"`
	Rarity string          `gorm:"size:20;not null" json:"rarity" validate:"max=20"`
}

func (i *Item) BeforeSave(*gorm.DB) error { return validate.Struct(i, nil) }

// Smartphone is a phone graded into a price category.
type Smartphone struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Brand    string          `gorm:"size:100;not null" json:"brand" validate:"required,max=100"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0,decimal=10:2"`
	Category string          `gorm:"size:20;not null" json:"category" validate:"max=20"`
}

func (s *Smartphone) BeforeSave(*gorm.DB) error { return validate.Struct(s, nil) }

var (
	ten         = decimal.NewFromInt(10)
	twenty      = decimal.NewFromInt(20)
	thirty      = decimal.NewFromInt(30)
	expensiveAt = decimal.NewFromInt(750)
)

// RarityFor grades an item price.
func RarityFor(price decimal.Decimal) string {
	switch {
	case price.LessThanOrEqual(ten):
		return "Rare"
	case price.LessThanOrEqual(twenty):
		return "Very Rare"
	case price.LessThanOrEqual(thirty):
		return "Extremely Rare"
	}
	return "Mega Rare"
}

// CategoryFor grades a smartphone price.
func CategoryFor(price decimal.Decimal) string {
	if price.GreaterThanOrEqual(expensiveAt) {
		return "Expensive"
	}
	return "Cheap"
}

const batchSize = 100

// backfill walks every row of T in primary key batches and stores the value
// grade computes for it in column.
func backfill[T any](ctx context.Context, tx *gorm.DB, column string, grade func(*T) (uint, string)) error {
	var batch []*T
	res := tx.WithContext(ctx).FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		for _, row := range batch {
			id, v := grade(row)
			err := store.Bulk(tx).WithContext(ctx).Model(new(T)).Where("id = ?", id).UpdateColumn(column, v).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	return res.Error
}

// Migrations are the data migrations of the drill, in order.
func Migrations() []store.DataMigration {
	return []store.DataMigration{
		{Name: "0012_set_item_rarity", Apply: func(ctx context.Context, tx *gorm.DB) error {
			return backfill(ctx, tx, "rarity", func(i *Item) (uint, string) { return i.ID, RarityFor(i.Price) })
		}},
		{Name: "0015_set_smartphone_category", Apply: func(ctx context.Context, tx *gorm.DB) error {
			return backfill(ctx, tx, "category", func(s *Smartphone) (uint, string) { return s.ID, CategoryFor(s.Price) })
		}},
	}
}

// ListItems lists items with their rarity.
func ListItems(ctx context.Context, db *gorm.DB) (string, error) {
	var items []Item
	if err := db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return "", fmt.Errorf("listing items: %w", err)
	}
	lines := make([]string, 0, len(items))
	for _, i := range items {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", i.Name, i.Price.StringFixed(2), orUnset(i.Rarity)))
	}
	return exercise.Lines(lines), nil
}

// ListSmartphones lists smartphones with their category.
func ListSmartphones(ctx context.Context, db *gorm.DB) (string, error) {
	var phones []Smartphone
	if err := db.WithContext(ctx).Order("id").Find(&phones).Error; err != nil {
		return "", fmt.Errorf("listing smartphones: %w", err)
	}
	lines := make([]string, 0, len(phones))
	for _, p := range phones {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", p.Brand, p.Price.StringFixed(2), orUnset(p.Category)))
	}
	return exercise.Lines(lines), nil
}

func orUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return s
}

// Exercise registers the inventory drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:       "inventory",
		Summary:    "Data migrations backfilling item rarity and phone category",
		Models:     []any{&Item{}, &Smartphone{}},
		Migrations: Migrations(),
		Populate:   Populate,
		Callers: []exercise.Caller{
			{Name: "list_items", Run: exercise.NoArgs(ListItems)},
			{Name: "list_smartphones", Run: exercise.NoArgs(ListSmartphones)},
		},
	}
}

// Populate inserts ungraded items and phones.
func Populate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	items := []*Item{
		{Name: "Wooden Sword", Price: decimal.RequireFromString("5.00")},
		{Name: "Iron Shield", Price: decimal.RequireFromString("10.00")},
		{Name: "Silver Ring", Price: decimal.RequireFromString("15.50")},
		{Name: "Golden Helm", Price: decimal.RequireFromString("20.01")},
		{Name: "Dragon Scale", Price: decimal.RequireFromString("30.00")},
		{Name: "Phoenix Feather", Price: decimal.RequireFromString("99.99")},
	}
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("creating items: %w", err)
	}
	phones := []*Smartphone{
		{Brand: "Apple", Price: decimal.RequireFromString("999.00")},
		{Brand: "Samsung", Price: decimal.RequireFromString("750.00")},
		{Brand: "Xiaomi", Price: decimal.RequireFromString("749.99")},
	}
	if err := db.Create(&phones).Error; err != nil {
		return fmt.Errorf("creating smartphones: %w", err)
	}
	return nil
}
