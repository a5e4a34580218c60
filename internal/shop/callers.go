package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// GetProfiles lists profiles whose name, email or phone number contains
// search, with their order counts.
func GetProfiles(ctx context.Context, db *gorm.DB, search string) (string, error) {
	if search == "" {
		return "", nil
	}

	nameCond, pattern := store.IContainsExpr("profiles.full_name", search)
	emailCond, _ := store.IContainsExpr("profiles.email", search)
	phoneCond, _ := store.IContainsExpr("profiles.phone_number", search)

	var rows []ProfileOrders
	err := db.WithContext(ctx).Model(&Profile{}).
		Select("profiles.*, COUNT(orders.id) AS num_of_orders").
		Joins("LEFT JOIN orders ON orders.profile_id = profiles.id").
		Where(nameCond+" OR "+emailCond+" OR "+phoneCond, pattern, pattern, pattern).
		Group("profiles.id").
		Order("profiles.id").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("searching profiles: %w", err)
	}

	lines := make([]string, 0, len(rows))
	for _, p := range rows {
		lines = append(lines, fmt.Sprintf("Profile: %s, email: %s, phone number: %s, orders: %d",
			p.FullName, p.Email, p.PhoneNumber, p.NumOfOrders))
	}
	return exercise.Lines(lines), nil
}

// GetLoyalProfiles lists the regular customers.
func GetLoyalProfiles(ctx context.Context, db *gorm.DB) (string, error) {
	rows, err := RegularCustomers(db.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("loading regular customers: %w", err)
	}
	lines := make([]string, 0, len(rows))
	for _, p := range rows {
		lines = append(lines, fmt.Sprintf("Profile: %s, orders: %d", p.FullName, p.NumOfOrders))
	}
	return exercise.Lines(lines), nil
}

// GetLastSoldProducts names the products of the most recent order.
func GetLastSoldProducts(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	var last Order
	if err := store.First(db.Order("id DESC"), &last); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("loading last order: %w", err)
	}

	var names []string
	err := db.Model(&Product{}).
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Where("order_products.order_id = ?", last.ID).
		Order("products.id").
		Pluck("products.name", &names).Error
	if err != nil {
		return "", fmt.Errorf("loading products of order %d: %w", last.ID, err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return "Last sold products: " + strings.Join(names, ", "), nil
}

// GetTopProducts lists the five most ordered products.
func GetTopProducts(ctx context.Context, db *gorm.DB) (string, error) {
	var rows []struct {
		Name        string
		NumOfOrders int64
	}
	err := db.WithContext(ctx).Model(&Product{}).
		Select("products.name, COUNT(order_products.order_id) AS num_of_orders").
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Group("products.id, products.name").
		Order("num_of_orders DESC, products.name").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("ranking products: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, "Top products:")
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s, sold %d times", r.Name, r.NumOfOrders))
	}
	return exercise.Lines(lines), nil
}

// ApplyDiscounts takes 10% off every open order with more than two
// products.
func ApplyDiscounts(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	large := db.Table("order_products").
		Select("order_id").
		Group("order_id").
		Having("COUNT(product_id) > ?", 2)

	res := store.Bulk(db).Model(&Order{}).
		Where("is_completed = ?", false).
		Where("id IN (?)", large).
		UpdateColumn("total_price", gorm.Expr("ROUND(total_price * 0.9, 2)"))
	if res.Error != nil {
		return "", fmt.Errorf("applying discounts: %w", res.Error)
	}
	return fmt.Sprintf("Discount applied to %d orders.", res.RowsAffected), nil
}

// CompleteOrder completes the oldest open order and takes its products out
// of stock. A product whose last unit is sold becomes unavailable.
func CompleteOrder(ctx context.Context, db *gorm.DB) (string, error) {
	done := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := store.First(tx.Where("is_completed = ?", false).Order("creation_date, id"), &order); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil
			}
			return err
		}

		order.IsCompleted = true
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("saving order %d: %w", order.ID, err)
		}

		ids := tx.Table("order_products").Select("product_id").Where("order_id = ?", order.ID)
		err := store.Bulk(tx).Model(&Product{}).
			Where("id IN (?)", ids).
			UpdateColumns(map[string]any{
				"in_stock":     gorm.Expr("CASE WHEN in_stock > 0 THEN in_stock - 1 ELSE 0 END"),
				"is_available": gorm.Expr("CASE WHEN in_stock = 1 THEN ? ELSE is_available END", false),
			}).Error
		if err != nil {
			return fmt.Errorf("updating stock of order %d: %w", order.ID, err)
		}
		done = true
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("completing order: %w", err)
	}
	if !done {
		return "", nil
	}
	return "Order has been completed!", nil
}
