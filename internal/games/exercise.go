package games

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
)

// Exercise registers the games drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "games",
		Summary:  "Video games: custom range validators and manager queries",
		Models:   []any{&VideoGame{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "games_by_genre", Usage: "<genre>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				if err := exercise.NeedArgs(args, 1, "games_by_genre <genre>"); err != nil {
					return "", err
				}
				return ListGamesByGenre(ctx, db, args[0])
			}},
			{Name: "recently_released_games", Usage: "<year>", Run: func(ctx context.Context, db *gorm.DB, args []string) (string, error) {
				year, err := exercise.IntArg(args, 0)
				if err != nil {
					return "", err
				}
				return RecentlyReleasedGames(ctx, db, year)
			}},
			{Name: "highest_rated_game", Run: exercise.NoArgs(HighestRatedGame)},
			{Name: "lowest_rated_game", Run: exercise.NoArgs(LowestRatedGame)},
			{Name: "average_rating", Run: exercise.NoArgs(AverageRating)},
		},
	}
}

// Populate inserts a small catalogue.
func Populate(ctx context.Context, db *gorm.DB) error {
	gs := []*VideoGame{
		{Title: "The Last of Us Part II", Genre: "Action", ReleaseYear: 2020, Rating: decimal.RequireFromString("9.0")},
		{Title: "Cyberpunk 2077", Genre: "RPG", ReleaseYear: 2020, Rating: decimal.RequireFromString("7.2")},
		{Title: "Red Dead Redemption 2", Genre: "Adventure", ReleaseYear: 2018, Rating: decimal.RequireFromString("9.7")},
		{Title: "FIFA 22", Genre: "Sports", ReleaseYear: 2021, Rating: decimal.RequireFromString("7.0")},
		{Title: "Civilization VI", Genre: "Strategy", ReleaseYear: 2016, Rating: decimal.RequireFromString("8.8")},
		{Title: "Ghost of Tsushima", Genre: "Action", ReleaseYear: 2020, Rating: decimal.RequireFromString("9.3")},
	}
	if err := db.WithContext(ctx).Create(&gs).Error; err != nil {
		return fmt.Errorf("creating video games: %w", err)
	}
	return nil
}
