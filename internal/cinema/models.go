// Package cinema is the second prep exam drill: directors, actors and the
// movies they make.
package cinema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Movie genres.
const (
	GenreAction = "Action"
	GenreComedy = "Comedy"
	GenreDrama  = "Drama"
	GenreOther  = "Other"
)

// PersonBase holds the fields shared by directors and actors.
type PersonBase struct {
	FullName    string         `gorm:"size:120;not null" json:"full_name" validate:"min=2,max=120"`
	BirthDate   datatypes.Date `gorm:"not null" json:"birth_date"`
	Nationality string         `gorm:"size:50;not null;default:Unknown" json:"nationality" validate:"max=50"`
}

func (p *PersonBase) setDefaults() {
	if time.Time(p.BirthDate).IsZero() {
		p.BirthDate = exercise.Date(1900, time.January, 1)
	}
	if p.Nationality == "" {
		p.Nationality = "Unknown"
	}
}

// Director directs movies.
type Director struct {
	ID uint `gorm:"primaryKey" json:"id"`
	PersonBase
	YearsOfExperience int16 `gorm:"not null;default:0" json:"years_of_experience" validate:"gte=0"`
}

func (d *Director) BeforeSave(*gorm.DB) error {
	d.setDefaults()
	return validate.Struct(d, nil)
}

// Actor stars or appears in movies.
type Actor struct {
	ID uint `gorm:"primaryKey" json:"id"`
	PersonBase
	IsAwarded   bool      `gorm:"not null" json:"is_awarded"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

func (a *Actor) BeforeSave(*gorm.DB) error {
	a.setDefaults()
	return validate.Struct(a, nil)
}

// Movie is directed by one director, may have a starring actor and any
// number of cast members.
type Movie struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:150;not null" json:"title" validate:"min=5,max=150"`
	ReleaseDate datatypes.Date  `gorm:"not null" json:"release_date"`
	Storyline   *string         `json:"storyline"`
	Genre       string          `gorm:"size:6;not null;default:Other" json:"genre" validate:"oneof=Action Comedy Drama Other"`
	Rating      decimal.Decimal `gorm:"type:decimal(3,1);not null;default:0" json:"rating" validate:"gte=0,lte=10,decimal=3:1"`
	IsClassic   bool            `gorm:"not null" json:"is_classic"`
	IsAwarded   bool            `gorm:"not null" json:"is_awarded"`
	LastUpdated time.Time       `gorm:"autoUpdateTime" json:"last_updated"`

	DirectorID      uint      `gorm:"not null;index" json:"director_id"`
	Director        *Director `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	StarringActorID *uint     `gorm:"index" json:"starring_actor_id"`
	StarringActor   *Actor    `gorm:"constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	Actors          []Actor   `gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (m *Movie) BeforeSave(*gorm.DB) error {
	if m.Genre == "" {
		m.Genre = GenreOther
	}
	return validate.Struct(m, nil)
}

// DirectorMovies is a director annotated with the number of movies made.
type DirectorMovies struct {
	Director
	MoviesCount int64 `json:"movies_count"`
}

// DirectorsByMoviesCount lists directors by movie count, most first, then
// by name.
func DirectorsByMoviesCount(db *gorm.DB) ([]DirectorMovies, error) {
	var rows []DirectorMovies
	err := db.Model(&Director{}).
		Select("directors.*, COUNT(movies.id) AS movies_count").
		Joins("LEFT JOIN movies ON movies.director_id = directors.id").
		Group("directors.id").
		Order("movies_count DESC, directors.full_name").
		Scan(&rows).Error
	return rows, err
}
