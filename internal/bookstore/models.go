// Package bookstore is the regular exam drill: publishers, authors and the
// books that tie them together.
package bookstore

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Book genres.
const (
	GenreFiction    = "Fiction"
	GenreNonFiction = "Non-Fiction"
	GenreOther      = "Other"
)

var defaultEstablished = datatypes.Date(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC))

// Publisher publishes books.
type Publisher struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name" validate:"min=3,max=100"`
	EstablishedDate datatypes.Date `gorm:"not null" json:"established_date"`
	Country         string         `gorm:"size:40;not null;default:TBC" json:"country" validate:"max=40"`
	Rating          float64        `gorm:"not null;default:0" json:"rating" validate:"gte=0,lte=5"`
}

// Validate checks the field rules.
func (p *Publisher) Validate() error {
	return validate.Struct(p, nil)
}

// BeforeSave fills defaults and validates.
func (p *Publisher) BeforeSave(*gorm.DB) error {
	if time.Time(p.EstablishedDate).IsZero() {
		p.EstablishedDate = defaultEstablished
	}
	if p.Country == "" {
		p.Country = "TBC"
	}
	return p.Validate()
}

// Author writes books, either as main author or as co-author.
type Author struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name" validate:"min=3,max=100"`
	BirthDate *datatypes.Date `json:"birth_date"`
	Country   string          `gorm:"size:40;not null;default:TBC" json:"country" validate:"max=40"`
	IsActive  bool            `gorm:"not null" json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (a *Author) Validate() error {
	return validate.Struct(a, nil)
}

func (a *Author) BeforeSave(*gorm.DB) error {
	if a.Country == "" {
		a.Country = "TBC"
	}
	return a.Validate()
}

// Book is written by a main author and any number of co-authors.
type Book struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:200;not null" json:"title" validate:"min=2,max=200"`
	PublicationDate datatypes.Date  `gorm:"not null" json:"publication_date"`
	Summary         *string         `json:"summary"`
	Genre           string          `gorm:"size:11;not null;default:Other" json:"genre" validate:"oneof=Fiction Non-Fiction Other"`
	Price           decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price" validate:"gte=0.01,lte=9999.99,decimal=6:2"`
	Rating          float64         `gorm:"not null;default:0" json:"rating" validate:"gte=0,lte=5"`
	IsBestseller    bool            `gorm:"not null" json:"is_bestseller"`
	UpdatedAt       time.Time       `json:"updated_at"`

	PublisherID  uint       `gorm:"not null;index" json:"publisher_id"`
	Publisher    *Publisher `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	MainAuthorID uint       `gorm:"not null;index" json:"main_author_id"`
	MainAuthor   *Author    `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CoAuthors    []Author   `gorm:"many2many:book_co_authors;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (b *Book) Validate() error {
	return validate.Struct(b, nil)
}

func (b *Book) BeforeSave(*gorm.DB) error {
	if b.Genre == "" {
		b.Genre = GenreOther
	}
	if b.Price.IsZero() {
		b.Price = decimal.RequireFromString("0.01")
	}
	return b.Validate()
}

// PublisherBooks is a publisher annotated with its number of books.
type PublisherBooks struct {
	Publisher
	TotalBooks int64 `json:"total_books"`
}

// PublishersByBooksCount lists publishers by book count, most first, then
// by name.
func PublishersByBooksCount(db *gorm.DB) ([]PublisherBooks, error) {
	var rows []PublisherBooks
	err := db.Model(&Publisher{}).
		Select("publishers.*, COUNT(books.id) AS total_books").
		Joins("LEFT JOIN books ON books.publisher_id = publishers.id").
		Group("publishers.id").
		Order("total_books DESC, publishers.name").
		Scan(&rows).Error
	return rows, err
}
