package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pricing is the behaviour a product view exposes.
type Pricing interface {
	CalculateTax() decimal.Decimal
	CalculateShippingCost(weight decimal.Decimal) decimal.Decimal
	FormatProductName() string
}

var (
	productTax       = decimal.RequireFromString("0.08")
	productShipping  = decimal.RequireFromString("2.00")
	discountTax      = decimal.RequireFromString("0.05")
	discountShipping = decimal.RequireFromString("1.50")
	discountMarkup   = decimal.RequireFromString("0.20")
)

// Product is a priced item.
type Product struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"size:100;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (p Product) CalculateTax() decimal.Decimal {
	return p.Price.Mul(productTax)
}

func (p Product) CalculateShippingCost(weight decimal.Decimal) decimal.Decimal {
	return weight.Mul(productShipping)
}

func (p Product) FormatProductName() string {
	return "Product: " + p.Name
}

// DiscountedProduct reads and writes the products table with discounted
// pricing rules.
type DiscountedProduct struct {
	Product
}

func (DiscountedProduct) TableName() string { return "products" }

func (d DiscountedProduct) CalculateTax() decimal.Decimal {
	return d.Price.Mul(discountTax)
}

func (d DiscountedProduct) CalculateShippingCost(weight decimal.Decimal) decimal.Decimal {
	return weight.Mul(discountShipping)
}

func (d DiscountedProduct) FormatProductName() string {
	return "Discounted Product: " + d.Name
}

// CalculatePriceWithoutDiscount returns the price before the 20% discount.
func (d DiscountedProduct) CalculatePriceWithoutDiscount() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(1).Add(discountMarkup))
}

// PricingLine renders a product view with its tax and the shipping cost
// for weight.
func PricingLine(p Pricing, weight decimal.Decimal) string {
	return fmt.Sprintf("%s, tax: %s, shipping: %s",
		p.FormatProductName(), p.CalculateTax().StringFixed(2), p.CalculateShippingCost(weight).StringFixed(2))
}
