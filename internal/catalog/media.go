package catalog

import (
	"time"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// mediaOrder is the default listing order of every media model.
const mediaOrder = "created_at DESC, title"

// BaseMedia holds the fields shared by books, movies and music.
type BaseMedia struct {
	Title       string    `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Description string    `gorm:"type:text;not null" json:"description" validate:"required"`
	Genre       string    `gorm:"size:50;not null" json:"genre" validate:"required,max=50"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

var bookMessages = validate.Messages{
	"author.min": "Author must be at least 5 characters long",
	"isbn.min":   "ISBN must be at least 6 characters long",
}

// Book is a printed title.
type Book struct {
	ID uint `gorm:"primaryKey" json:"id"`
	BaseMedia
	Author string `gorm:"size:100;not null" json:"author" validate:"min=5,max=100"`
	ISBN   string `gorm:"column:isbn;size:20;not null;uniqueIndex" json:"isbn" validate:"min=6,max=20"`
}

func (b *Book) Validate() error {
	return validate.Struct(b, bookMessages)
}

func (b *Book) BeforeSave(*gorm.DB) error {
	return b.Validate()
}

// Movie is a film.
type Movie struct {
	ID uint `gorm:"primaryKey" json:"id"`
	BaseMedia
	Director string `gorm:"size:100;not null" json:"director" validate:"min=8,max=100"`
}

func (m *Movie) Validate() error {
	return validate.Struct(m, validate.Messages{"director.min": "Director must be at least 8 characters long"})
}

func (m *Movie) BeforeSave(*gorm.DB) error {
	return m.Validate()
}

// Music is a record.
type Music struct {
	ID uint `gorm:"primaryKey" json:"id"`
	BaseMedia
	Artist string `gorm:"size:100;not null" json:"artist" validate:"min=9,max=100"`
}

// TableName keeps the singular table name.
func (Music) TableName() string { return "music" }

func (m *Music) Validate() error {
	return validate.Struct(m, validate.Messages{"artist.min": "Artist must be at least 9 characters long"})
}

func (m *Music) BeforeSave(*gorm.DB) error {
	return m.Validate()
}
