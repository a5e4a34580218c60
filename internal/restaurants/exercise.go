package restaurants

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// Exercise registers the restaurants drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:    "restaurants",
		Summary: "Restaurants, menus and reviews: custom validator messages, abstract bases and default ordering",
		Models: []any{
			&Restaurant{}, &Menu{},
			&RegularRestaurantReview{}, &FoodCriticRestaurantReview{}, &MenuReview{},
		},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "restaurant_reviews", Run: exercise.NoArgs(RestaurantReviews)},
			{Name: "food_critic_reviews", Run: exercise.NoArgs(FoodCriticReviews)},
			{Name: "menu_reviews", Run: exercise.NoArgs(MenuReviews)},
			{Name: "add_restaurant", Usage: "<name> <location> <rating>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 3, "add_restaurant <name> <location> <rating>"); err != nil {
					return "", err
				}
				rating, err := decimal.NewFromString(args[2])
				if err != nil {
					return "", fmt.Errorf("%w: rating %q", types.ErrInvalidArgs, args[2])
				}
				return AddRestaurant(ctx, db, args[0], args[1], rating)
			}},
			{Name: "add_menu", Usage: "<restaurant-id> <name> <description>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 3, "add_menu <restaurant-id> <name> <description>"); err != nil {
					return "", err
				}
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				return AddMenu(ctx, db, id, args[1], args[2])
			}},
		},
	}
}

// Populate inserts two restaurants with a menu and a few reviews.
func Populate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bistro := Restaurant{Name: "Bistro Sofia", Location: "Sofia", Rating: decimal.RequireFromString("4.50")}
		tavern := Restaurant{Name: "Old Tavern", Location: "Plovdiv", Rating: decimal.RequireFromString("3.80")}
		if err := tx.Create(&[]*Restaurant{&bistro, &tavern}).Error; err != nil {
			return fmt.Errorf("creating restaurants: %w", err)
		}

		menu := Menu{
			Name:         "Summer Menu",
			Description:  "Appetizers: shopska salad. Main Course: moussaka. Desserts: baklava.",
			RestaurantID: bistro.ID,
		}
		if err := tx.Create(&menu).Error; err != nil {
			return fmt.Errorf("creating menu: %w", err)
		}

		regular := []*RegularRestaurantReview{
			{ReviewerName: "Ana", Review: Review{ReviewContent: "Lovely terrace.", Rating: 4}, RestaurantID: bistro.ID},
			{ReviewerName: "Boris", Review: Review{ReviewContent: "Best in town.", Rating: 5}, RestaurantID: bistro.ID},
			{ReviewerName: "Ana", Review: Review{ReviewContent: "Too loud.", Rating: 2}, RestaurantID: tavern.ID},
		}
		if err := tx.Create(&regular).Error; err != nil {
			return fmt.Errorf("creating restaurant reviews: %w", err)
		}

		critic := FoodCriticRestaurantReview{
			ReviewerName:          "Gordon",
			Review:                Review{ReviewContent: "Honest Balkan cooking.", Rating: 4},
			FoodCriticCuisineArea: "Balkan",
			RestaurantID:          bistro.ID,
		}
		if err := tx.Create(&critic).Error; err != nil {
			return fmt.Errorf("creating critic review: %w", err)
		}

		menuReviews := []*MenuReview{
			{ReviewerName: "Ana", Review: Review{ReviewContent: "Great desserts.", Rating: 5}, MenuID: menu.ID},
			{ReviewerName: "Boris", Review: Review{ReviewContent: "Small portions.", Rating: 3}, MenuID: menu.ID},
		}
		if err := tx.Create(&menuReviews).Error; err != nil {
			return fmt.Errorf("creating menu reviews: %w", err)
		}
		return nil
	})
}
