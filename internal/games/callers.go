package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// GamesByGenre returns the games of one genre.
func GamesByGenre(db *gorm.DB, genre string) ([]VideoGame, error) {
	var gs []VideoGame
	err := db.Where("genre = ?", genre).Order("id").Find(&gs).Error
	return gs, err
}

// RecentlyReleased returns games released in year or later.
func RecentlyReleased(db *gorm.DB, year int) ([]VideoGame, error) {
	var gs []VideoGame
	err := db.Where("release_year >= ?", year).Order("release_year DESC, title").Find(&gs).Error
	return gs, err
}

func describe(gs []VideoGame) string {
	lines := make([]string, 0, len(gs))
	for _, g := range gs {
		lines = append(lines, line(g))
	}
	return exercise.Lines(lines)
}

func line(g VideoGame) string {
	return fmt.Sprintf("%s (%s, %d) - rating: %s", g.Title, g.Genre, g.ReleaseYear, g.Rating.StringFixed(1))
}

// ListGamesByGenre lists the games of genre.
func ListGamesByGenre(ctx context.Context, db *gorm.DB, genre string) (string, error) {
	gs, err := GamesByGenre(db.WithContext(ctx), genre)
	if err != nil {
		return "", fmt.Errorf("listing %s games: %w", genre, err)
	}
	return describe(gs), nil
}

// RecentlyReleasedGames lists games released since year.
func RecentlyReleasedGames(ctx context.Context, db *gorm.DB, year int) (string, error) {
	gs, err := RecentlyReleased(db.WithContext(ctx), year)
	if err != nil {
		return "", fmt.Errorf("listing games since %d: %w", year, err)
	}
	return describe(gs), nil
}

func ranked(ctx context.Context, db *gorm.DB, order string) (string, error) {
	var g VideoGame
	err := store.First(db.WithContext(ctx).Order(order), &g)
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ranking games: %w", err)
	}
	return line(g), nil
}

// HighestRatedGame describes the best rated game.
func HighestRatedGame(ctx context.Context, db *gorm.DB) (string, error) {
	return ranked(ctx, db, "rating DESC, title")
}

// LowestRatedGame describes the worst rated game.
func LowestRatedGame(ctx context.Context, db *gorm.DB) (string, error) {
	return ranked(ctx, db, "rating, title")
}

// AverageRating reports the mean rating rounded to one decimal.
func AverageRating(ctx context.Context, db *gorm.DB) (string, error) {
	var avg sql.NullFloat64
	if err := db.WithContext(ctx).Model(&VideoGame{}).Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return "", fmt.Errorf("averaging ratings: %w", err)
	}
	if !avg.Valid {
		return "", nil
	}
	return "Average rating: " + exercise.Fixed(avg.Float64, 1), nil
}
