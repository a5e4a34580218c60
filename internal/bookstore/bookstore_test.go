package bookstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store/storetest"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

func populated(t *testing.T) *gorm.DB {
	t.Helper()
	db := storetest.DB(t, Exercise().Models...)
	require.NoError(t, Populate(context.Background(), db))
	return db
}

func TestValidation(t *testing.T) {
	db := storetest.DB(t, Exercise().Models...)

	err := db.Create(&Publisher{Name: "Pe", Rating: 6}).Error
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Ensure this value has at least 3 characters (it has 2)."}, ve.Messages("name"))
	assert.Equal(t, []string{"Ensure this value is less than or equal to 5."}, ve.Messages("rating"))

	p := Publisher{Name: "Penguin"}
	require.NoError(t, db.Create(&p).Error)
	assert.Equal(t, "TBC", p.Country)
	assert.Equal(t, 1800, time.Time(p.EstablishedDate).Year())

	a := Author{Name: "Ann"}
	require.NoError(t, db.Create(&a).Error)

	err = db.Create(&Book{Title: "Go", Genre: "Poetry", PublisherID: p.ID, MainAuthorID: a.ID}).Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Value 'Poetry' is not a valid choice."}, ve.Messages("genre"))

	b := Book{Title: "Go", PublisherID: p.ID, MainAuthorID: a.ID}
	require.NoError(t, db.Create(&b).Error)
	assert.Equal(t, GenreOther, b.Genre)
	assert.True(t, b.Price.Equal(decimal.RequireFromString("0.01")))
}

func TestPublishersByBooksCount(t *testing.T) {
	db := populated(t)

	rows, err := PublishersByBooksCount(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Georgi", rows[0].Name)
	assert.Equal(t, int64(1), rows[0].TotalBooks)
	assert.Equal(t, "Martin", rows[1].Name)
}

func TestCallers(t *testing.T) {
	ctx := context.Background()
	db := populated(t)

	tests := []struct {
		name string
		run  func() (string, error)
		want string
	}{
		{"publishers no search", func() (string, error) { return GetPublishers(ctx, db, "") }, "No search criteria."},
		{"publishers none", func() (string, error) { return GetPublishers(ctx, db, "zzz") }, "No publishers found."},
		{"publishers", func() (string, error) { return GetPublishers(ctx, db, "u") },
			"Publisher: Martin, country: US, rating: 4.5\nPublisher: Georgi, country: UK, rating: 3.7"},
		{"top publisher", func() (string, error) { return GetTopPublisher(ctx, db) }, "Top Publisher: Georgi with 1 books."},
		{"top main author", func() (string, error) { return GetTopMainAuthor(ctx, db) },
			"Top Author: Ivo, own book titles: Book 1, books average rating: 4.2"},
		{"authors by books", func() (string, error) { return GetAuthorsByBooksCount(ctx, db) },
			"Ivo authored 3 books.\nNeno authored 3 books."},
		{"bestseller", func() (string, error) { return GetBestseller(ctx, db) },
			"Top bestseller: Book 1, index: 7.2. Main author: Ivo. Co-authors: Ivo/Neno."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallers_Empty(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	for _, fn := range []func(context.Context, *gorm.DB) (string, error){
		GetTopMainAuthor, GetAuthorsByBooksCount, GetBestseller,
	} {
		got, err := fn(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, "No results.", got)
	}

	got, err := GetTopPublisher(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "No publishers found.", got)

	got, err = IncreasePrice(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "No changes in price.", got)
}

func TestIncreasePrice(t *testing.T) {
	ctx := context.Background()
	db := storetest.DB(t, Exercise().Models...)

	p := Publisher{Name: "Orbit", Rating: 5}
	require.NoError(t, db.Create(&p).Error)
	a := Author{Name: "Ann"}
	require.NoError(t, db.Create(&a).Error)

	books := []*Book{
		{Title: "Pricey", PublicationDate: exercise.Date(PriceYear, 3, 1), Price: decimal.NewFromInt(60), Rating: 4, PublisherID: p.ID, MainAuthorID: a.ID},
		{Title: "Cheap", PublicationDate: exercise.Date(PriceYear, 9, 9), Price: decimal.NewFromInt(20), Rating: 3, PublisherID: p.ID, MainAuthorID: a.ID},
		{Title: "Old", PublicationDate: exercise.Date(PriceYear-1, 6, 1), Price: decimal.NewFromInt(20), Rating: 5, PublisherID: p.ID, MainAuthorID: a.ID},
		{Title: "Weak", PublicationDate: exercise.Date(PriceYear, 6, 1), Price: decimal.NewFromInt(20), Rating: 2, PublisherID: p.ID, MainAuthorID: a.ID},
	}
	require.NoError(t, db.Create(&books).Error)

	got, err := IncreasePrice(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Prices increased for 2 book/s.", got)

	want := map[string]string{"Pricey": "66", "Cheap": "24", "Old": "20", "Weak": "20"}
	var stored []Book
	require.NoError(t, db.Find(&stored).Error)
	for _, b := range stored {
		assert.True(t, b.Price.Equal(decimal.RequireFromString(want[b.Title])), "%s: %s", b.Title, b.Price)
	}
}
