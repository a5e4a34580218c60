package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the shop drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "shop",
		Summary:  "Profiles, products and orders: managers, top lists, bulk discounts and order completion",
		Models:   []any{&Profile{}, &Product{}, &Order{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "get_profiles", Usage: "<search>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				return GetProfiles(ctx, db, exercise.Arg(args, 0))
			}},
			{Name: "get_loyal_profiles", Run: exercise.NoArgs(GetLoyalProfiles)},
			{Name: "get_last_sold_products", Run: exercise.NoArgs(GetLastSoldProducts)},
			{Name: "get_top_products", Run: exercise.NoArgs(GetTopProducts)},
			{Name: "apply_discounts", Run: exercise.NoArgs(ApplyDiscounts)},
			{Name: "complete_order", Run: exercise.NoArgs(CompleteOrder)},
		},
	}
}

// Populate inserts two profiles, two products and two orders.
func Populate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		john := Profile{FullName: "John Doe", Email: "john@example.com", PhoneNumber: "0888123456", Address: "Sofia, Bulgaria", IsActive: true}
		maria := Profile{FullName: "Maria Ivanova", Email: "maria@example.com", PhoneNumber: "0899123456", Address: "Plovdiv, Bulgaria", IsActive: true}
		if err := tx.Create(&[]*Profile{&john, &maria}).Error; err != nil {
			return fmt.Errorf("creating profiles: %w", err)
		}

		laptop := Product{Name: "Laptop", Description: "Fast ultrabook", Price: decimal.RequireFromString("1499.99"), InStock: 10, IsAvailable: true}
		headphones := Product{Name: "Headphones", Description: "Noise cancelling headphones", Price: decimal.RequireFromString("199.99"), InStock: 30, IsAvailable: true}
		if err := tx.Create(&[]*Product{&laptop, &headphones}).Error; err != nil {
			return fmt.Errorf("creating products: %w", err)
		}

		orders := []struct {
			order    Order
			products []*Product
		}{
			{Order{ProfileID: john.ID, TotalPrice: decimal.RequireFromString("1699.98")}, []*Product{&laptop, &headphones}},
			{Order{ProfileID: maria.ID, TotalPrice: decimal.RequireFromString("199.99"), IsCompleted: true}, []*Product{&headphones}},
		}
		for i := range orders {
			o := &orders[i].order
			if err := tx.Create(o).Error; err != nil {
				return fmt.Errorf("creating order: %w", err)
			}
			if err := tx.Model(o).Association("Products").Append(orders[i].products); err != nil {
				return fmt.Errorf("adding products to order %d: %w", o.ID, err)
			}
		}
		return nil
	})
}
