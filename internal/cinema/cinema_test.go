package cinema

import (
	"context"
	"errors"
	"testing"

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

func str(s string) *string { return &s }

func TestDefaultsAndValidation(t *testing.T) {
	db := storetest.DB(t, Exercise().Models...)

	d := Director{PersonBase: PersonBase{FullName: "Ida"}}
	require.NoError(t, db.Create(&d).Error)
	assert.Equal(t, "Unknown", d.Nationality)
	assert.Equal(t, "1900-01-01", exercise.FormatDate(d.BirthDate))

	err := db.Create(&Movie{Title: "Up", Rating: decimal.NewFromInt(11), DirectorID: d.ID}).Error
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Ensure this value has at least 5 characters (it has 2)."}, ve.Messages("title"))
	assert.Equal(t, []string{"Ensure this value is less than or equal to 10."}, ve.Messages("rating"))
}

func TestStarringActorSetNull(t *testing.T) {
	db := populated(t)

	require.NoError(t, db.Where("full_name = ?", "Petar Ivanov").Delete(&Actor{}).Error)

	var m Movie
	require.NoError(t, db.Where("title = ?", "Movie One").First(&m).Error)
	assert.Nil(t, m.StarringActorID)
}

func TestCallers(t *testing.T) {
	ctx := context.Background()
	db := populated(t)

	tests := []struct {
		name string
		run  func() (string, error)
		want string
	}{
		{"directors no criteria", func() (string, error) { return GetDirectors(ctx, db, nil, nil) }, ""},
		{"directors by name", func() (string, error) { return GetDirectors(ctx, db, str("director"), nil) },
			"Director: Director One, nationality: North America, experience: 5\n" +
				"Director: Director Two, nationality: South America, experience: 6"},
		{"directors by both", func() (string, error) { return GetDirectors(ctx, db, str("two"), str("south")) },
			"Director: Director Two, nationality: South America, experience: 6"},
		{"directors none", func() (string, error) { return GetDirectors(ctx, db, nil, str("Europe")) }, ""},
		{"top director", func() (string, error) { return GetTopDirector(ctx, db) }, "Top Director: Director One, movies: 1."},
		{"top actor", func() (string, error) { return GetTopActor(ctx, db) },
			"Top Actor: Martin Johnson, starring in movies: Movie Two, movies average rating: 3.5"},
		{"actors by movies", func() (string, error) { return GetActorsByMoviesCount(ctx, db) },
			"Martin Johnson, participated in 2 movies\nPetar Ivanov, participated in 2 movies"},
		{"top awarded", func() (string, error) { return GetTopRatedAwardedMovie(ctx, db) },
			"Top rated awarded movie: Movie Two, rating: 3.5. Starring actor: Martin Johnson. Cast: Martin Johnson, Petar Ivanov"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunGetDirectors(t *testing.T) {
	db := populated(t)

	got, err := runGetDirectors(context.Background(), db, []string{"-", "north"})
	require.NoError(t, err)
	assert.Equal(t, "Director: Director One, nationality: North America, experience: 5", got)
}

func TestIncreaseRating(t *testing.T) {
	ctx := context.Background()
	db := populated(t)

	got, err := IncreaseRating(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Rating increased for 1 movies.", got)

	var m Movie
	require.NoError(t, db.Where("title = ?", "Movie One").First(&m).Error)
	assert.Equal(t, "5.1", m.Rating.StringFixed(1))

	require.NoError(t, db.Model(&Movie{}).Where("id = ?", m.ID).UpdateColumn("rating", 10).Error)
	got, err = IncreaseRating(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "No ratings increased.", got)
}
