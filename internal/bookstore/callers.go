package bookstore

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
)

// PriceYear is the publication year IncreasePrice targets.
const PriceYear = 2025

// GetPublishers lists publishers whose name or country contains search,
// best rated first.
func GetPublishers(ctx context.Context, db *gorm.DB, search string) (string, error) {
	if search == "" {
		return "No search criteria.", nil
	}

	nameCond, pattern := store.IContainsExpr("name", search)
	countryCond, _ := store.IContainsExpr("country", search)

	var publishers []Publisher
	err := db.WithContext(ctx).
		Where(nameCond+" OR "+countryCond, pattern, pattern).
		Order("rating DESC, name").
		Find(&publishers).Error
	if err != nil {
		return "", fmt.Errorf("searching publishers: %w", err)
	}
	if len(publishers) == 0 {
		return "No publishers found.", nil
	}

	lines := make([]string, 0, len(publishers))
	for _, p := range publishers {
		lines = append(lines, fmt.Sprintf("Publisher: %s, country: %s, rating: %s", p.Name, p.Country, exercise.Float(p.Rating)))
	}
	return exercise.Lines(lines), nil
}

// GetTopPublisher reports the publisher with the most books.
func GetTopPublisher(ctx context.Context, db *gorm.DB) (string, error) {
	rows, err := PublishersByBooksCount(db.WithContext(ctx).Limit(1))
	if err != nil {
		return "", fmt.Errorf("counting books per publisher: %w", err)
	}
	if len(rows) == 0 {
		return "No publishers found.", nil
	}
	return fmt.Sprintf("Top Publisher: %s with %d books.", rows[0].Name, rows[0].TotalBooks), nil
}

// GetTopMainAuthor reports the author who is main author of the most books.
func GetTopMainAuthor(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	var top struct {
		ID         uint
		Name       string
		TotalBooks int64
	}
	err := db.Model(&Author{}).
		Select("authors.id, authors.name, COUNT(books.id) AS total_books").
		Joins("LEFT JOIN books ON books.main_author_id = authors.id").
		Group("authors.id, authors.name").
		Order("total_books DESC, authors.name").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return "", fmt.Errorf("counting books per author: %w", err)
	}
	if top.ID == 0 || top.TotalBooks == 0 {
		return "No results.", nil
	}

	var books []Book
	if err := db.Where("main_author_id = ?", top.ID).Order("id").Find(&books).Error; err != nil {
		return "", fmt.Errorf("loading books of %s: %w", top.Name, err)
	}
	titles := make([]string, 0, len(books))
	var sum float64
	for _, b := range books {
		titles = append(titles, b.Title)
		sum += b.Rating
	}
	avg := sum / float64(len(books))

	return fmt.Sprintf("Top Author: %s, own book titles: %s, books average rating: %s",
		top.Name, strings.Join(titles, ", "), exercise.Float(avg)), nil
}

// GetAuthorsByBooksCount lists the three main authors with the most books,
// counting main and co-authored books.
func GetAuthorsByBooksCount(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	counts := db.Model(&Author{}).Select(`authors.name,
		(SELECT COUNT(*) FROM books WHERE books.main_author_id = authors.id) AS main_count,
		(SELECT COUNT(DISTINCT book_id) FROM book_co_authors WHERE book_co_authors.author_id = authors.id) AS co_count`)

	var rows []struct {
		Name       string
		TotalBooks int64
	}
	err := db.Table("(?) AS counts", counts).
		Select("name, main_count + co_count AS total_books").
		Where("main_count > 0").
		Order("total_books DESC, name").
		Limit(3).
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("counting authored books: %w", err)
	}
	if len(rows) == 0 {
		return "No results.", nil
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s authored %d books.", r.Name, r.TotalBooks))
	}
	return exercise.Lines(lines), nil
}

// GetBestseller reports the book with the highest composed index: number of
// co-authors plus rating plus one.
func GetBestseller(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	const coAuthors = "(SELECT COUNT(DISTINCT author_id) FROM book_co_authors WHERE book_co_authors.book_id = books.id)"
	var top struct {
		ID            uint
		Title         string
		MainAuthorID  uint
		ComposedIndex float64
	}
	err := db.Model(&Book{}).
		Select("books.id, books.title, books.main_author_id, " +
			coAuthors + " AS total_authors, " +
			coAuthors + " + books.rating + 1 AS composed_index").
		Order("composed_index DESC, books.rating DESC, total_authors DESC, books.title").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return "", fmt.Errorf("ranking books: %w", err)
	}
	if top.ID == 0 {
		return "No results.", nil
	}

	var main Author
	if err := store.First(db.Where("id = ?", top.MainAuthorID), &main); err != nil {
		return "", fmt.Errorf("loading main author: %w", err)
	}

	var coNames []string
	err = db.Model(&Author{}).
		Joins("JOIN book_co_authors ON book_co_authors.author_id = authors.id").
		Where("book_co_authors.book_id = ?", top.ID).
		Order("authors.name").
		Pluck("authors.name", &coNames).Error
	if err != nil {
		return "", fmt.Errorf("loading co-authors: %w", err)
	}
	co := "N/A"
	if len(coNames) > 0 {
		co = strings.Join(coNames, "/")
	}

	return fmt.Sprintf("Top bestseller: %s, index: %s. Main author: %s. Co-authors: %s.",
		top.Title, exercise.Fixed(top.ComposedIndex, 1), main.Name, co), nil
}

// IncreasePrice raises the price of books published in PriceYear whose
// rating plus publisher rating reaches 8.0: by 10% above 50, otherwise 20%.
func IncreasePrice(ctx context.Context, db *gorm.DB) (string, error) {
	db = db.WithContext(ctx)

	from, to := exercise.YearRange(PriceYear)
	eligible := db.Model(&Book{}).
		Select("books.id").
		Joins("JOIN publishers ON publishers.id = books.publisher_id").
		Where("books.publication_date >= ? AND books.publication_date < ?", from, to).
		Where("books.rating + publishers.rating >= ?", 8.0)

	res := store.Bulk(db).Model(&Book{}).
		Where("id IN (?)", eligible).
		UpdateColumn("price", gorm.Expr("ROUND(CASE WHEN price > 50 THEN price * 1.1 ELSE price * 1.2 END, 2)"))
	if res.Error != nil {
		return "", fmt.Errorf("increasing prices: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "No changes in price.", nil
	}
	return fmt.Sprintf("Prices increased for %d book/s.", res.RowsAffected), nil
}
