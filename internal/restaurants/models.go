// Package restaurants is the advanced model techniques lab: restaurants,
// their menus and reviews with custom validation messages.
package restaurants

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

var restaurantMessages = validate.Messages{
	"name.min":     "Name must be at least 2 characters long.",
	"name.max":     "Name cannot exceed 100 characters.",
	"location.min": "Location must be at least 2 characters long.",
	"location.max": "Location cannot exceed 200 characters.",
	"rating.gte":   "Rating must be at least 0.00.",
	"rating.lte":   "Rating cannot exceed 5.00.",
}

// Restaurant is a place with menus and reviews.
type Restaurant struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name" validate:"min=2,max=100"`
	Location    string          `gorm:"size:200;not null" json:"location" validate:"min=2,max=200"`
	Description *string         `json:"description"`
	Rating      decimal.Decimal `gorm:"type:decimal(3,2);not null" json:"rating" validate:"gte=0,lte=5,decimal=3:2"`
}

func (r *Restaurant) Validate() error {
	return validate.Struct(r, restaurantMessages)
}

func (r *Restaurant) BeforeSave(*gorm.DB) error {
	return r.Validate()
}

// Menu belongs to a restaurant. Its description must mention every menu
// category.
type Menu struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description  string      `gorm:"type:text;not null" json:"description" validate:"menu_categories"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (m *Menu) Validate() error {
	return validate.Struct(m, nil)
}

func (m *Menu) BeforeSave(*gorm.DB) error {
	return m.Validate()
}

// Review holds the content and rating every review has. Ratings go from 0
// to 5.
type Review struct {
	ReviewContent string `gorm:"type:text;not null" json:"review_content" validate:"required"`
	Rating        uint   `gorm:"not null" json:"rating" validate:"lte=5"`
}

// RegularRestaurantReview is a guest's review of a restaurant. A reviewer
// reviews a restaurant at most once.
type RegularRestaurantReview struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ReviewerName string `gorm:"size:100;not null;index:idx_regular_review_reviewer,unique,priority:1" json:"reviewer_name" validate:"required,max=100"`
	Review
	RestaurantID uint        `gorm:"not null;index:idx_regular_review_reviewer,unique,priority:2" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (r *RegularRestaurantReview) BeforeSave(*gorm.DB) error {
	return validate.Struct(r, nil)
}

// FoodCriticRestaurantReview is a critic's review with the critic's
// cuisine area.
type FoodCriticRestaurantReview struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ReviewerName string `gorm:"size:100;not null;index:idx_critic_review_reviewer,unique,priority:1" json:"reviewer_name" validate:"required,max=100"`
	Review
	FoodCriticCuisineArea string      `gorm:"size:100;not null" json:"food_critic_cuisine_area" validate:"required,max=100"`
	RestaurantID          uint        `gorm:"not null;index:idx_critic_review_reviewer,unique,priority:2" json:"restaurant_id"`
	Restaurant            *Restaurant `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (r *FoodCriticRestaurantReview) BeforeSave(*gorm.DB) error {
	return validate.Struct(r, nil)
}

// MenuReview is a review of one menu.
type MenuReview struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ReviewerName string `gorm:"size:100;not null;index:idx_menu_review_reviewer,unique,priority:1" json:"reviewer_name" validate:"required,max=100"`
	Review
	MenuID uint  `gorm:"not null;index:main_app_menu_review_menu_id;index:idx_menu_review_reviewer,unique,priority:2" json:"menu_id"`
	Menu   *Menu `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (r *MenuReview) BeforeSave(*gorm.DB) error {
	return validate.Struct(r, nil)
}
