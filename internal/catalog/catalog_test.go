package catalog

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

func TestCustomer_Validate(t *testing.T) {
	valid := Customer{Name: "John Doe", Age: 25, Email: "john@example.com", PhoneNumber: "+359123456789", WebsiteURL: "https://www.example.com"}
	assert.NoError(t, valid.Validate())

	bad := Customer{Name: "John1", Age: 17, Email: "john", PhoneNumber: "0888123456", WebsiteURL: "example"}
	var ve *validate.Error
	require.True(t, errors.As(bad.Validate(), &ve))
	assert.Equal(t, map[string][]string{
		"name":         {"Name can only contain letters and spaces"},
		"age":          {"Age must be greater than or equal to 18"},
		"email":        {"Enter a valid email address"},
		"phone_number": {"Phone number must start with '+359' followed by 9 digits"},
		"website_url":  {"Enter a valid URL"},
	}, ve.Fields())
}

func TestCustomer_ValidateBlankName(t *testing.T) {
	c := Customer{Age: 30, Email: "jane@example.com", PhoneNumber: "+359123456789", WebsiteURL: "https://www.example.com"}
	var ve *validate.Error
	require.True(t, errors.As(c.Validate(), &ve))
	assert.Equal(t, map[string][]string{"name": {"This field cannot be blank."}}, ve.Fields())

	db := storetest.DB(t, Exercise().Models...)
	require.Error(t, db.Create(&c).Error)
	var n int64
	require.NoError(t, db.Model(&Customer{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestValidateBook(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	got, err := ValidateBook(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Validation Error for Book:\n"+
		"author: Author must be at least 5 characters long\n"+
		"isbn: ISBN must be at least 6 characters long", got)

	var n int64
	require.NoError(t, db.Model(&Book{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestListMedia(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	books := []*Book{
		{BaseMedia: BaseMedia{Title: "Old", Description: "d", Genre: "g", CreatedAt: day}, Author: "Someone", ISBN: "111111"},
		{BaseMedia: BaseMedia{Title: "Beta", Description: "d", Genre: "g", CreatedAt: day.Add(time.Hour)}, Author: "Someone", ISBN: "222222"},
		{BaseMedia: BaseMedia{Title: "Alpha", Description: "d", Genre: "g", CreatedAt: day.Add(time.Hour)}, Author: "Someone", ISBN: "333333"},
	}
	require.NoError(t, db.Create(&books).Error)

	got, err := ListBooks(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Alpha by Someone (g, ISBN 333333)\nBeta by Someone (g, ISBN 222222)\nOld by Someone (g, ISBN 111111)", got)

	err = db.Create(&Movie{BaseMedia: BaseMedia{Title: "Short", Description: "d", Genre: "g"}, Director: "Nolan"}).Error
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"director: Director must be at least 8 characters long"}, ve.Lines())

	err = db.Create(&Music{BaseMedia: BaseMedia{Title: "Short", Description: "d", Genre: "g"}, Artist: "Queen"}).Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"artist: Artist must be at least 9 characters long"}, ve.Lines())
}

func TestProducts(t *testing.T) {
	p := Product{Name: "Laptop", Price: decimal.RequireFromString("1000.00")}
	d := DiscountedProduct{Product: p}
	two := decimal.NewFromInt(2)

	assert.Equal(t, "80.00", p.CalculateTax().StringFixed(2))
	assert.Equal(t, "4.00", p.CalculateShippingCost(two).StringFixed(2))
	assert.Equal(t, "Product: Laptop", p.FormatProductName())
	assert.Equal(t, "50.00", d.CalculateTax().StringFixed(2))
	assert.Equal(t, "3.00", d.CalculateShippingCost(two).StringFixed(2))
	assert.Equal(t, "Discounted Product: Laptop", d.FormatProductName())
	assert.Equal(t, "1200.00", d.CalculatePriceWithoutDiscount().StringFixed(2))

	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, db.Create(&p).Error)

	got, err := ProductPricing(ctx, db, two)
	require.NoError(t, err)
	assert.Equal(t, "Product: Laptop, tax: 80.00, shipping: 4.00\n"+
		"Discounted Product: Laptop, tax: 50.00, shipping: 3.00, price without discount: 1200.00", got)
}

func TestHero_UseAbility(t *testing.T) {
	f := FlashHero{Hero{Name: "Barry", Energy: 65}}
	assert.Equal(t, "Barry as Flash Hero runs at lightning speed, saving the day", f.RunAtSuperSpeed())
	assert.Equal(t, uint(1), f.Energy)
	assert.Equal(t, "Barry as Flash Hero needs to recharge the speed force", f.RunAtSuperSpeed())
	assert.Equal(t, uint(1), f.Energy)
}

func TestRechargeHero_Saturates(t *testing.T) {
	tests := []struct {
		name   string
		energy uint
		amount uint
		want   string
	}{
		{"below cap", 50, 30, "Tony energy: 80"},
		{"exactly to cap", 50, 50, "Tony energy: 100"},
		{"past cap", 50, 51, "Tony energy: 100"},
		{"largest amount", 50, math.MaxUint, "Tony energy: 100"},
		{"already full", 100, math.MaxUint, "Tony energy: 100"},
		{"zero amount", 0, 0, "Tony energy: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db := storetest.DB(t, Exercise().Models...)
			h := Hero{Name: "Tony", HeroTitle: "Iron Hero", Energy: tt.energy}
			require.NoError(t, db.Create(&h).Error)

			got, err := RechargeHero(ctx, db, h.ID, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var stored Hero
			require.NoError(t, db.First(&stored, h.ID).Error)
			assert.LessOrEqual(t, stored.Energy, uint(MaxEnergy))
		})
	}
}

func TestHeroCallers(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := SwingFromBuildings(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, "Peter as Spider Hero swings from buildings using web shooters", got)

	got, err = SwingFromBuildings(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, "Peter as Spider Hero is out of web shooter fluid", got)

	got, err = RechargeHero(ctx, db, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "Peter energy: 70", got)

	got, err = RechargeHero(ctx, db, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "Peter energy: 100", got)

	got, err = RunAtSuperSpeed(ctx, db, 2)
	require.NoError(t, err)
	assert.Equal(t, "Barry as Flash Hero runs at lightning speed, saving the day", got)

	var h Hero
	require.NoError(t, db.First(&h, 2).Error)
	assert.Equal(t, uint(5), h.Energy)

	_, err = RunAtSuperSpeed(ctx, db, 99)
	assert.Error(t, err)
}

func TestSearchDocuments(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := SearchTitles(ctx, db, "django")
	require.NoError(t, err)
	assert.Empty(t, got, "vectors are empty until refreshed")

	got, err = RefreshSearchVectors(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Updated 5 documents", got)

	tests := []struct {
		query string
		want  string
	}{
		{"Django Web", "Django Framework 1\nDjango Framework 2"},
		{"python", "Django Framework 1\nFlask Framework"},
		{"modular", "Django Applications"},
		{"web", "Django Framework 1\nDjango Framework 2\nFlask Framework\nWeb Development"},
		{"rust", ""},
		{"!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := SearchTitles(ctx, db, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"high", "level", "python"}, Terms("High-level PYTHON!"))
	assert.Equal(t, " a b c ", searchVector("C b", "a, A"))
}
