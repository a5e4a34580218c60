// Package shop is the first prep exam drill: customer profiles, products and
// orders.
package shop

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// TimeStamped records when a row was created.
type TimeStamped struct {
	CreationDate time.Time `gorm:"autoCreateTime;not null" json:"creation_date"`
}

// Profile is a customer.
type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`
	TimeStamped
	FullName    string `gorm:"size:100;not null" json:"full_name" validate:"required,max=100"`
	Email       string `gorm:"size:254;not null" json:"email" validate:"required,email"`
	PhoneNumber string `gorm:"size:15;not null" json:"phone_number" validate:"required,max=15"`
	Address     string `gorm:"type:text;not null" json:"address" validate:"required"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

func (p *Profile) BeforeSave(*gorm.DB) error {
	return validate.Struct(p, nil)
}

// Product is a sellable item.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`
	TimeStamped
	Name        string          `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description string          `gorm:"type:text;not null" json:"description" validate:"required"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0.01,decimal=10:2"`
	InStock     uint            `gorm:"not null" json:"in_stock"`
	IsAvailable bool            `gorm:"not null" json:"is_available"`
}

func (p *Product) BeforeSave(*gorm.DB) error {
	return validate.Struct(p, nil)
}

// Order is placed by a profile for one or more products.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	TimeStamped
	ProfileID   uint            `gorm:"not null;index" json:"profile_id"`
	Profile     *Profile        `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Products    []Product       `gorm:"many2many:order_products;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price" validate:"gte=0.01,decimal=10:2"`
	IsCompleted bool            `gorm:"not null" json:"is_completed"`
}

func (o *Order) BeforeSave(*gorm.DB) error {
	return validate.Struct(o, nil)
}

// ProfileOrders is a profile annotated with its number of orders.
type ProfileOrders struct {
	Profile
	NumOfOrders int64 `json:"num_of_orders"`
}

// RegularCustomers returns profiles with more than two orders, most orders
// first.
func RegularCustomers(db *gorm.DB) ([]ProfileOrders, error) {
	var rows []ProfileOrders
	err := db.Model(&Profile{}).
		Select("profiles.*, COUNT(orders.id) AS num_of_orders").
		Joins("LEFT JOIN orders ON orders.profile_id = profiles.id").
		Group("profiles.id").
		Having("COUNT(orders.id) > ?", 2).
		Order("num_of_orders DESC, profiles.id").
		Scan(&rows).Error
	return rows, err
}
