package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the catalog drill.
func Exercise() exercise.Exercise {
	heroCaller := func(name string, fn func(context.Context, *gorm.DB, uint) (string, error)) exercise.Caller {
		return exercise.Caller{Name: name, Usage: "<hero-id>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
			id, err := exercise.UintArg(args, 0)
			if err != nil {
				return "", err
			}
			return fn(ctx, db, id)
		}}
	}
	return exercise.Exercise{
		Name:     "catalog",
		Summary:  "Custom validators, abstract bases, proxy models and document search",
		Models:   []any{&Customer{}, &Book{}, &Movie{}, &Music{}, &Product{}, &Hero{}, &Document{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "validate_book", Run: exercise.NoArgs(ValidateBook)},
			{Name: "add_customer", Usage: "<name> <age> <email> <phone> <website>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				c, err := parseCustomer(args)
				if err != nil {
					return "", err
				}
				return AddCustomer(ctx, db, c)
			}},
			{Name: "list_books", Run: exercise.NoArgs(ListBooks)},
			{Name: "list_movies", Run: exercise.NoArgs(ListMovies)},
			{Name: "list_music", Run: exercise.NoArgs(ListMusic)},
			{Name: "product_pricing", Usage: "<weight>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 1, "product_pricing <weight>"); err != nil {
					return "", err
				}
				w, err := parseWeight(args[0])
				if err != nil {
					return "", err
				}
				return ProductPricing(ctx, db, w)
			}},
			heroCaller("swing_from_buildings", SwingFromBuildings),
			heroCaller("run_at_super_speed", RunAtSuperSpeed),
			{Name: "recharge_energy", Usage: "<hero-id> <amount>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				id, err := exercise.UintArg(args, 0)
				if err != nil {
					return "", err
				}
				amount, err := exercise.UintArg(args, 1)
				if err != nil {
					return "", err
				}
				return RechargeHero(ctx, db, id, amount)
			}},
			{Name: "update_search_vectors", Run: exercise.NoArgs(RefreshSearchVectors)},
			{Name: "search_documents", Usage: "<query...>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 1, "search_documents <query...>"); err != nil {
					return "", err
				}
				return SearchTitles(ctx, db, joinArgs(args))
			}},
		},
	}
}

// Populate inserts media, products, heroes and documents.
func Populate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	rows := []any{
		&[]*Book{
			{BaseMedia: BaseMedia{Title: "Dune", Description: "Desert planet epic.", Genre: "Science Fiction"}, Author: "Frank Herbert", ISBN: "9780441013593"},
			{BaseMedia: BaseMedia{Title: "Emma", Description: "A comedy of manners.", Genre: "Classic"}, Author: "Jane Austen", ISBN: "9780141439587"},
		},
		&[]*Movie{
			{BaseMedia: BaseMedia{Title: "Alien", Description: "In space no one can hear you scream.", Genre: "Horror"}, Director: "Ridley Scott"},
		},
		&[]*Music{
			{BaseMedia: BaseMedia{Title: "Abbey Road", Description: "The last recorded album.", Genre: "Rock"}, Artist: "The Beatles"},
		},
		&[]*Product{
			{Name: "Laptop", Price: decimal.RequireFromString("1000.00")},
			{Name: "Phone", Price: decimal.RequireFromString("500.00")},
		},
		&[]*Hero{
			{Name: "Peter", HeroTitle: "Spider Hero", Energy: 100},
			{Name: "Barry", HeroTitle: "Flash Hero", Energy: 70},
		},
		&[]*Document{
			{Title: "Django Framework 1", Content: "Django is a high-level Python web framework for building web applications."},
			{Title: "Django Framework 2", Content: "Django framework provides tools for creating web applications quickly."},
			{Title: "Flask Framework", Content: "Flask is a lightweight Python web framework."},
			{Title: "Django Applications", Content: "Django applications are modular components of a Django project."},
			{Title: "Web Development", Content: "Web development involves creating websites and web applications."},
		},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			return fmt.Errorf("populating catalog: %w", err)
		}
	}
	return nil
}
