package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// ValidateBook checks a book with a too short author and ISBN and stores it
// only when it is valid.
func ValidateBook(ctx context.Context, db *gorm.DB) (string, error) {
	b := &Book{
		BaseMedia: BaseMedia{Title: "Short Title", Description: "A book with a short title.", Genre: "Fiction"},
		Author:    "A",
		ISBN:      "1234",
	}
	err := db.WithContext(ctx).Create(b).Error
	var ve *validate.Error
	if errors.As(err, &ve) {
		return exercise.Lines(append([]string{"Validation Error for Book:"}, ve.Lines()...)), nil
	}
	if err != nil {
		return "", fmt.Errorf("creating book: %w", store.TranslateError(err))
	}
	return fmt.Sprintf("Book %s created", b.Title), nil
}

// AddCustomer validates and stores a customer.
func AddCustomer(ctx context.Context, db *gorm.DB, c *Customer) (string, error) {
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return exercise.Report(err)
	}
	return fmt.Sprintf("Customer %s created", c.Name), nil
}

func listMedia[T any](ctx context.Context, db *gorm.DB, line func(T) string) (string, error) {
	var rows []T
	if err := db.WithContext(ctx).Order(mediaOrder).Find(&rows).Error; err != nil {
		return "", fmt.Errorf("listing media: %w", err)
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, line(r))
	}
	return exercise.Lines(lines), nil
}

// ListBooks lists books newest first.
func ListBooks(ctx context.Context, db *gorm.DB) (string, error) {
	return listMedia(ctx, db, func(b Book) string {
		return fmt.Sprintf("%s by %s (%s, ISBN %s)", b.Title, b.Author, b.Genre, b.ISBN)
	})
}

// ListMovies lists movies newest first.
func ListMovies(ctx context.Context, db *gorm.DB) (string, error) {
	return listMedia(ctx, db, func(m Movie) string {
		return fmt.Sprintf("%s directed by %s (%s)", m.Title, m.Director, m.Genre)
	})
}

// ListMusic lists records newest first.
func ListMusic(ctx context.Context, db *gorm.DB) (string, error) {
	return listMedia(ctx, db, func(m Music) string {
		return fmt.Sprintf("%s by %s (%s)", m.Title, m.Artist, m.Genre)
	})
}

// ProductPricing prices every product both as a regular and as a
// discounted product for a parcel of weight kilograms.
func ProductPricing(ctx context.Context, db *gorm.DB, weight decimal.Decimal) (string, error) {
	var ps []DiscountedProduct
	if err := db.WithContext(ctx).Order("id").Find(&ps).Error; err != nil {
		return "", fmt.Errorf("listing products: %w", err)
	}
	var lines []string
	for _, p := range ps {
		lines = append(lines,
			PricingLine(p.Product, weight),
			PricingLine(p, weight)+", price without discount: "+p.CalculatePriceWithoutDiscount().StringFixed(2))
	}
	return exercise.Lines(lines), nil
}

func loadHero(ctx context.Context, db *gorm.DB, id uint) (Hero, error) {
	var h Hero
	if err := store.First(db.WithContext(ctx).Where("id = ?", id), &h); err != nil {
		return Hero{}, fmt.Errorf("hero %d: %w", id, err)
	}
	return h, nil
}

func saveEnergy(ctx context.Context, db *gorm.DB, h Hero) error {
	return db.WithContext(ctx).Model(&h).Update("energy", h.Energy).Error
}

// SwingFromBuildings lets hero id act as a spider hero.
func SwingFromBuildings(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	h, err := loadHero(ctx, db, id)
	if err != nil {
		return "", err
	}
	s := SpiderHero{Hero: h}
	msg := s.SwingFromBuildings()
	if err := saveEnergy(ctx, db, s.Hero); err != nil {
		return "", fmt.Errorf("saving hero %d: %w", id, err)
	}
	return msg, nil
}

// RunAtSuperSpeed lets hero id act as a flash hero.
func RunAtSuperSpeed(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	h, err := loadHero(ctx, db, id)
	if err != nil {
		return "", err
	}
	f := FlashHero{Hero: h}
	msg := f.RunAtSuperSpeed()
	if err := saveEnergy(ctx, db, f.Hero); err != nil {
		return "", fmt.Errorf("saving hero %d: %w", id, err)
	}
	return msg, nil
}

// RechargeHero recharges hero id by amount.
func RechargeHero(ctx context.Context, db *gorm.DB, id, amount uint) (string, error) {
	h, err := loadHero(ctx, db, id)
	if err != nil {
		return "", err
	}
	if err := h.RechargeEnergy(db.WithContext(ctx), amount); err != nil {
		return "", fmt.Errorf("recharging hero %d: %w", id, err)
	}
	return fmt.Sprintf("%s energy: %d", h.Name, h.Energy), nil
}

// RefreshSearchVectors is the caller form of UpdateSearchVectors.
func RefreshSearchVectors(ctx context.Context, db *gorm.DB) (string, error) {
	n, err := UpdateSearchVectors(ctx, db)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %d documents", n), nil
}

// SearchTitles lists the titles of the documents matching query.
func SearchTitles(ctx context.Context, db *gorm.DB, query string) (string, error) {
	docs, err := SearchDocuments(ctx, db, query)
	if err != nil {
		return "", err
	}
	titles := make([]string, 0, len(docs))
	for _, d := range docs {
		titles = append(titles, d.Title)
	}
	return exercise.Lines(titles), nil
}

func parseCustomer(args []string) (*Customer, error) {
	if err := exercise.NeedArgs(args, 5, "add_customer <name> <age> <email> <phone> <website>"); err != nil {
		return nil, err
	}
	age, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: age: %v", types.ErrInvalidArgs, err)
	}
	return &Customer{Name: args[0], Age: uint(age), Email: args[2], PhoneNumber: args[3], WebsiteURL: args[4]}, nil
}

func parseWeight(s string) (decimal.Decimal, error) {
	w, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: weight: %v", types.ErrInvalidArgs, err)
	}
	return w, nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
