package restaurants

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

type reviewRow struct {
	ReviewerName          string
	Subject               string
	Rating                uint
	ReviewContent         string
	FoodCriticCuisineArea string
}

func reviewLines(rows []reviewRow) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s rated %s %d/5: %s", r.ReviewerName, r.Subject, r.Rating, r.ReviewContent))
	}
	return exercise.Lines(lines)
}

// RestaurantReviews lists regular reviews, best rated first.
func RestaurantReviews(ctx context.Context, db *gorm.DB) (string, error) {
	var rows []reviewRow
	err := db.WithContext(ctx).Model(&RegularRestaurantReview{}).
		Select("regular_restaurant_reviews.reviewer_name, restaurants.name AS subject, regular_restaurant_reviews.rating, regular_restaurant_reviews.review_content").
		Joins("JOIN restaurants ON restaurants.id = regular_restaurant_reviews.restaurant_id").
		Order("regular_restaurant_reviews.rating DESC, regular_restaurant_reviews.id").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("listing restaurant reviews: %w", err)
	}
	return reviewLines(rows), nil
}

// FoodCriticReviews lists critic reviews with the critic's cuisine area,
// best rated first.
func FoodCriticReviews(ctx context.Context, db *gorm.DB) (string, error) {
	var rows []reviewRow
	err := db.WithContext(ctx).Model(&FoodCriticRestaurantReview{}).
		Select("food_critic_restaurant_reviews.reviewer_name, restaurants.name AS subject, food_critic_restaurant_reviews.rating, " +
			"food_critic_restaurant_reviews.review_content, food_critic_restaurant_reviews.food_critic_cuisine_area").
		Joins("JOIN restaurants ON restaurants.id = food_critic_restaurant_reviews.restaurant_id").
		Order("food_critic_restaurant_reviews.rating DESC, food_critic_restaurant_reviews.id").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("listing critic reviews: %w", err)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s (%s critic) rated %s %d/5: %s",
			r.ReviewerName, r.FoodCriticCuisineArea, r.Subject, r.Rating, r.ReviewContent))
	}
	return exercise.Lines(lines), nil
}

// MenuReviews lists menu reviews, best rated first.
func MenuReviews(ctx context.Context, db *gorm.DB) (string, error) {
	var rows []reviewRow
	err := db.WithContext(ctx).Model(&MenuReview{}).
		Select("menu_reviews.reviewer_name, menus.name AS subject, menu_reviews.rating, menu_reviews.review_content").
		Joins("JOIN menus ON menus.id = menu_reviews.menu_id").
		Order("menu_reviews.rating DESC, menu_reviews.id").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("listing menu reviews: %w", err)
	}
	return reviewLines(rows), nil
}

// AddRestaurant saves a restaurant, or reports why it is invalid.
func AddRestaurant(ctx context.Context, db *gorm.DB, name, location string, rating decimal.Decimal) (string, error) {
	r := Restaurant{Name: name, Location: location, Rating: rating}
	if err := db.WithContext(ctx).Create(&r).Error; err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("Restaurant %s created.", r.Name), nil
}

// AddMenu saves a menu for a restaurant, or reports why it is invalid.
func AddMenu(ctx context.Context, db *gorm.DB, restaurantID uint, name, description string) (string, error) {
	m := Menu{Name: name, Description: description, RestaurantID: restaurantID}
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("Menu %s created.", m.Name), nil
}
