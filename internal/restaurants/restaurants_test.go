package restaurants

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

func TestRestaurant_Validate(t *testing.T) {
	tests := []struct {
		name   string
		r      Restaurant
		fields map[string][]string
	}{
		{"valid", Restaurant{Name: "Mama", Location: "Varna", Rating: decimal.RequireFromString("4.25")}, nil},
		{"short", Restaurant{Name: "M", Location: "V", Rating: decimal.RequireFromString("5.01")}, map[string][]string{
			"name":     {"Name must be at least 2 characters long."},
			"location": {"Location must be at least 2 characters long."},
			"rating":   {"Rating cannot exceed 5.00."},
		}},
		{"negative", Restaurant{Name: "Mama", Location: "Varna", Rating: decimal.RequireFromString("-1")}, map[string][]string{
			"rating": {"Rating must be at least 0.00."},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var ve *validate.Error
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.fields, ve.Fields())
		})
	}
}

func TestMenu_Validate(t *testing.T) {
	m := Menu{Name: "Lunch", Description: "appetizers, MAIN COURSE and desserts"}
	assert.NoError(t, m.Validate())

	m.Description = "Appetizers and Desserts"
	var ve *validate.Error
	require.True(t, errors.As(m.Validate(), &ve))
	assert.Equal(t, []string{`The menu must include each of the categories "Appetizers", "Main Course", "Desserts".`}, ve.Messages("description"))
}

func TestCallers(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	got, err := RestaurantReviews(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Boris rated Bistro Sofia 5/5: Best in town.\n"+
		"Ana rated Bistro Sofia 4/5: Lovely terrace.\n"+
		"Ana rated Old Tavern 2/5: Too loud.", got)

	got, err = FoodCriticReviews(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Gordon (Balkan critic) rated Bistro Sofia 4/5: Honest Balkan cooking.", got)

	got, err = MenuReviews(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Ana rated Summer Menu 5/5: Great desserts.\nBoris rated Summer Menu 3/5: Small portions.", got)

	got, err = AddRestaurant(ctx, db, "X", "Burgas", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "name: Name must be at least 2 characters long.", got)

	got, err = AddRestaurant(ctx, db, "Sea Breeze", "Burgas", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "Restaurant Sea Breeze created.", got)

	got, err = AddMenu(ctx, db, 1, "Kids", "Desserts only")
	require.NoError(t, err)
	assert.Equal(t, `description: The menu must include each of the categories "Appetizers", "Main Course", "Desserts".`, got)
}

func TestReviewerUniquePerRestaurant(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(ctx, db))

	var bistro Restaurant
	require.NoError(t, db.Where("name = ?", "Bistro Sofia").First(&bistro).Error)

	err := db.Create(&RegularRestaurantReview{ReviewerName: "Ana", Review: Review{ReviewContent: "Again", Rating: 1}, RestaurantID: bistro.ID}).Error
	assert.True(t, errors.Is(store.TranslateError(err), types.ErrDuplicate))

	err = db.Create(&RegularRestaurantReview{ReviewerName: "Ana", Review: Review{ReviewContent: "Rating", Rating: 6}, RestaurantID: bistro.ID}).Error
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Ensure this value is less than or equal to 5."}, ve.Messages("rating"))
}
