// Package catalog is the advanced model techniques exercise: customers with
// custom validators, abstract media bases, proxy models with overridden
// behaviour and a searchable document store.
package catalog

import (
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

func init() {
	validate.RegisterRegex("bg_phone", `^\+359\d{9}$`, "Phone number must start with '+359' followed by 9 digits")
}

var customerMessages = validate.Messages{
	"age.gte":     "Age must be greater than or equal to 18",
	"email":       "Enter a valid email address",
	"website_url": "Enter a valid URL",
}

// Customer is a registered customer.
type Customer struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name" validate:"required,max=100,letters_spaces"`
	Age         uint   `gorm:"not null" json:"age" validate:"gte=18"`
	Email       string `gorm:"size:254;not null" json:"email" validate:"email"`
	PhoneNumber string `gorm:"size:13;not null" json:"phone_number" validate:"bg_phone"`
	WebsiteURL  string `gorm:"size:200;not null" json:"website_url" validate:"url"`
}

func (c *Customer) Validate() error {
	return validate.Struct(c, customerMessages)
}

func (c *Customer) BeforeSave(*gorm.DB) error {
	return c.Validate()
}
