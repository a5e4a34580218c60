package cinema

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the cinema drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "cinema",
		Summary:  "Directors, actors and movies: optional filters, starring roles and rating bumps",
		Models:   []any{&Director{}, &Actor{}, &Movie{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "get_directors", Usage: "[name|-] [nationality|-]", Run: runGetDirectors},
			{Name: "get_top_director", Run: exercise.NoArgs(GetTopDirector)},
			{Name: "get_top_actor", Run: exercise.NoArgs(GetTopActor)},
			{Name: "get_actors_by_movies_count", Run: exercise.NoArgs(GetActorsByMoviesCount)},
			{Name: "get_top_rated_awarded_movie", Run: exercise.NoArgs(GetTopRatedAwardedMovie)},
			{Name: "increase_rating", Run: exercise.NoArgs(IncreaseRating)},
		},
	}
}

// runGetDirectors treats a missing argument or "-" as no criterion.
func runGetDirectors(ctx context.Context, db *gorm.DB, args []string) (string, error) {
	opt := func(i int) *string {
		if i >= len(args) || args[i] == "-" {
			return nil
		}
		return &args[i]
	}
	return GetDirectors(ctx, db, opt(0), opt(1))
}

// Populate inserts two directors, two actors and two movies.
func Populate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		one := Director{PersonBase: PersonBase{FullName: "Director One", BirthDate: exercise.Date(1974, time.May, 17), Nationality: "North America"}, YearsOfExperience: 5}
		two := Director{PersonBase: PersonBase{FullName: "Director Two", BirthDate: exercise.Date(1969, time.February, 21), Nationality: "South America"}, YearsOfExperience: 6}
		if err := tx.Create(&[]*Director{&one, &two}).Error; err != nil {
			return fmt.Errorf("creating directors: %w", err)
		}

		martin := Actor{PersonBase: PersonBase{FullName: "Martin Johnson", BirthDate: exercise.Date(1990, time.May, 10), Nationality: "North America"}, IsAwarded: true}
		petar := Actor{PersonBase: PersonBase{FullName: "Petar Ivanov", BirthDate: exercise.Date(1995, time.November, 5), Nationality: "South America"}}
		if err := tx.Create(&[]*Actor{&martin, &petar}).Error; err != nil {
			return fmt.Errorf("creating actors: %w", err)
		}

		movies := []*Movie{
			{
				Title: "Movie One", ReleaseDate: exercise.Today(), Storyline: exercise.Ptr("A movie description."),
				Genre: GenreAction, Rating: decimal.RequireFromString("5.0"), IsClassic: true,
				DirectorID: one.ID, StarringActorID: &petar.ID,
			},
			{
				Title: "Movie Two", ReleaseDate: exercise.Date(2018, time.November, 12), Storyline: exercise.Ptr("Another movie description."),
				Genre: GenreDrama, Rating: decimal.RequireFromString("3.5"), IsAwarded: true,
				DirectorID: two.ID, StarringActorID: &martin.ID,
			},
		}
		for _, m := range movies {
			if err := tx.Create(m).Error; err != nil {
				return fmt.Errorf("creating movie %s: %w", m.Title, err)
			}
			if err := tx.Model(m).Association("Actors").Replace(&martin, &petar); err != nil {
				return fmt.Errorf("casting %s: %w", m.Title, err)
			}
		}
		return nil
	})
}
