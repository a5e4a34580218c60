package bookstore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the bookstore drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "bookstore",
		Summary:  "Publishers, authors and books: annotated counts, composed indexes and conditional price updates",
		Models:   []any{&Publisher{}, &Author{}, &Book{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "get_publishers", Usage: "<search>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				return GetPublishers(ctx, db, exercise.Arg(args, 0))
			}},
			{Name: "get_top_publisher", Run: exercise.NoArgs(GetTopPublisher)},
			{Name: "get_top_main_author", Run: exercise.NoArgs(GetTopMainAuthor)},
			{Name: "get_authors_by_books_count", Run: exercise.NoArgs(GetAuthorsByBooksCount)},
			{Name: "get_bestseller", Run: exercise.NoArgs(GetBestseller)},
			{Name: "increase_price", Run: exercise.NoArgs(IncreasePrice)},
		},
	}
}

// Populate inserts two publishers, two authors and two co-authored books.
func Populate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		martin := Publisher{Name: "Martin", EstablishedDate: exercise.Today(), Country: "US", Rating: 4.5}
		georgi := Publisher{Name: "Georgi", EstablishedDate: exercise.Date(1997, 5, 4), Country: "UK", Rating: 3.7}
		if err := tx.Create(&[]*Publisher{&martin, &georgi}).Error; err != nil {
			return fmt.Errorf("creating publishers: %w", err)
		}

		neno := Author{Name: "Neno", BirthDate: exercise.Ptr(exercise.Date(2005, 8, 8)), Country: "UK", IsActive: true}
		ivo := Author{Name: "Ivo", BirthDate: exercise.Ptr(exercise.Date(2005, 3, 7)), Country: "US"}
		if err := tx.Create(&[]*Author{&neno, &ivo}).Error; err != nil {
			return fmt.Errorf("creating authors: %w", err)
		}

		books := []*Book{
			{
				Title: "Book 1", PublicationDate: exercise.Today(), Summary: exercise.Ptr("A book"), Genre: GenreFiction,
				Price: decimal.RequireFromString("26.00"), Rating: 4.2, IsBestseller: true,
				PublisherID: martin.ID, MainAuthorID: ivo.ID,
			},
			{
				Title: "Book 2", PublicationDate: exercise.Date(2025, 7, 3), Summary: exercise.Ptr("A book 2"), Genre: GenreNonFiction,
				Price: decimal.RequireFromString("23.50"), Rating: 4.1,
				PublisherID: georgi.ID, MainAuthorID: neno.ID,
			},
		}
		for _, b := range books {
			if err := tx.Create(b).Error; err != nil {
				return fmt.Errorf("creating book %s: %w", b.Title, err)
			}
			if err := tx.Model(b).Association("CoAuthors").Append(&ivo, &neno); err != nil {
				return fmt.Errorf("adding co-authors to %s: %w", b.Title, err)
			}
		}
		return nil
	})
}
