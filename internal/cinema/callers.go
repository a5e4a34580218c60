package cinema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// GetDirectors lists directors matching name and nationality. A nil
// criterion is not applied; with both nil nothing is listed.
func GetDirectors(ctx context.Context, db *gorm.DB, name, nationality *string) (string, error) {
	if name == nil && nationality == nil {
		return "", nil
	}

	q := db.WithContext(ctx).Model(&Director{})
	if name != nil {
		q = store.IContains(q, "full_name", *name)
	}
	if nationality != nil {
		q = store.IContains(q, "nationality", *nationality)
	}

	var directors []Director
	if err := q.Order("full_name").Find(&directors).Error; err != nil {
		return "", fmt.Errorf("searching directors: %w", err)
	}

	lines := make([]string, 0, len(directors))
	for _, d := range directors {
		lines = append(lines, fmt.Sprintf("Director: %s, nationality: %s, experience: %d",
			d.FullName, d.Nationality, d.YearsOfExperience))
	}
	return exercise.Lines(lines), nil
}

// GetTopDirector reports the director with the most movies.
func GetTopDirector(ctx context.Context, db *gorm.DB) (string, error) {
	rows, err := DirectorsByMoviesCount(db.WithContext(ctx).Limit(1))
	if err != nil {
		return "", fmt.Errorf("counting movies per director: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return fmt.Sprintf("Top Director: %s, movies: %d.", rows[0].FullName, rows[0].MoviesCount), nil
}

// GetTopActor reports the actor with the most starring roles.
func GetTopActor(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	var top struct {
		ID          uint
		FullName    string
		NumOfMovies int64
	}
	err := db.Model(&Actor{}).
		Select("actors.id, actors.full_name, COUNT(movies.id) AS num_of_movies").
		Joins("LEFT JOIN movies ON movies.starring_actor_id = actors.id").
		Group("actors.id, actors.full_name").
		Order("num_of_movies DESC, actors.full_name").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return "", fmt.Errorf("counting starring roles: %w", err)
	}
	if top.ID == 0 || top.NumOfMovies == 0 {
		return "", nil
	}

	starring := db.Model(&Movie{}).Where("starring_actor_id = ?", top.ID)

	var titles []string
	if err := starring.Session(&gorm.Session{}).Order("id").Pluck("title", &titles).Error; err != nil {
		return "", fmt.Errorf("loading starring movies: %w", err)
	}
	var avg float64
	if err := starring.Session(&gorm.Session{}).Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return "", fmt.Errorf("averaging ratings: %w", err)
	}

	return fmt.Sprintf("Top Actor: %s, starring in movies: %s, movies average rating: %s",
		top.FullName, strings.Join(titles, ", "), exercise.Fixed(avg, 1)), nil
}

// GetActorsByMoviesCount lists the three actors cast in the most movies.
func GetActorsByMoviesCount(ctx context.Context, db *gorm.DB) (string, error) {
	var rows []struct {
		FullName    string
		NumOfMovies int64
	}
	err := db.WithContext(ctx).Model(&Actor{}).
		Select("actors.full_name, COUNT(movie_actors.movie_id) AS num_of_movies").
		Joins("LEFT JOIN movie_actors ON movie_actors.actor_id = actors.id").
		Group("actors.id, actors.full_name").
		Order("num_of_movies DESC, actors.full_name").
		Limit(3).
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("counting cast appearances: %w", err)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s, participated in %d movies", r.FullName, r.NumOfMovies))
	}
	return exercise.Lines(lines), nil
}

// GetTopRatedAwardedMovie reports the best rated awarded movie with its
// starring actor and cast.
func GetTopRatedAwardedMovie(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	var movie Movie
	err := store.First(db.Preload("StarringActor").Where("is_awarded = ?", true).Order("rating DESC, title"), &movie)
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading top awarded movie: %w", err)
	}

	starring := "N/A"
	if movie.StarringActor != nil {
		starring = movie.StarringActor.FullName
	}

	var cast []string
	err = db.Model(&Actor{}).
		Joins("JOIN movie_actors ON movie_actors.actor_id = actors.id").
		Where("movie_actors.movie_id = ?", movie.ID).
		Order("actors.full_name").
		Pluck("actors.full_name", &cast).Error
	if err != nil {
		return "", fmt.Errorf("loading cast: %w", err)
	}

	return fmt.Sprintf("Top rated awarded movie: %s, rating: %s. Starring actor: %s. Cast: %s",
		movie.Title, movie.Rating.StringFixed(1), starring, strings.Join(cast, ", ")), nil
}

// IncreaseRating adds 0.1 to the rating of every classic below 10.
func IncreaseRating(ctx context.Context, db *gorm.DB) (string, error) {
	res := store.Bulk(db.WithContext(ctx)).Model(&Movie{}).
		Where("is_classic = ? AND rating < ?", true, 10.0).
		UpdateColumn("rating", gorm.Expr("ROUND(rating + 0.1, 1)"))
	if res.Error != nil {
		return "", fmt.Errorf("increasing ratings: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "No ratings increased.", nil
	}
	return fmt.Sprintf("Rating increased for %d movies.", res.RowsAffected), nil
}
