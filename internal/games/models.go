// Package games is the advanced queries drill: a video game catalogue with
// reusable range validators and manager queries.
package games

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Genres a video game can have.
var Genres = []string{"Action", "RPG", "Adventure", "Sports", "Strategy"}

var (
	checkReleaseYear = validate.ReleaseYear(1990, 2023, "The release year must be between 1990 and 2023")
	checkRating      = validate.Range(0.0, 10.0, "The rating must be between 0.0 and 10.0")
)

// VideoGame is a released title.
type VideoGame struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Genre       string          `gorm:"size:100;not null" json:"genre" validate:"oneof=Action RPG Adventure Sports Strategy"`
	ReleaseYear int             `gorm:"not null" json:"release_year"`
	Rating      decimal.Decimal `gorm:"type:decimal(3,1);not null" json:"rating" validate:"decimal=3:1"`
}

// Validate runs the tag rules plus the release year and rating ranges.
func (g *VideoGame) Validate() error {
	ve := validate.From(validate.Struct(g, nil))
	ve.Check("release_year", checkReleaseYear(g.ReleaseYear))
	ve.Check("rating", checkRating(g.Rating.InexactFloat64()))
	return ve.OrNil()
}

func (g *VideoGame) BeforeSave(*gorm.DB) error {
	return g.Validate()
}
