package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Document is a searchable text. SearchVector holds the folded, sorted,
// de-duplicated terms of title and content, space padded so a term can be
// matched as " term ".
type Document struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"size:200;not null" json:"title"`
	Content      string  `gorm:"type:text;not null" json:"content"`
	SearchVector *string `gorm:"index" json:"search_vector,omitempty"`
}

// Terms splits text into folded words.
func Terms(text string) []string {
	return strings.FieldsFunc(validate.Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func searchVector(title, content string) string {
	seen := map[string]bool{}
	var terms []string
	for _, t := range append(Terms(title), Terms(content)...) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	return " " + strings.Join(terms, " ") + " "
}

// UpdateSearchVectors recomputes the search vector of every document and
// returns how many were updated.
func UpdateSearchVectors(ctx context.Context, db *gorm.DB) (int, error) {
	var docs []Document
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&docs).Error; err != nil {
			return err
		}
		for _, d := range docs {
			v := searchVector(d.Title, d.Content)
			if err := store.Bulk(tx).Model(&Document{}).Where("id = ?", d.ID).UpdateColumn("search_vector", v).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("updating search vectors: %w", err)
	}
	return len(docs), nil
}

// SearchDocuments returns the documents whose vector holds every term of
// query, in id order. A query without terms matches nothing.
func SearchDocuments(ctx context.Context, db *gorm.DB, query string) ([]Document, error) {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil, nil
	}
	q := db.WithContext(ctx).Model(&Document{})
	for _, t := range terms {
		q = q.Where("search_vector LIKE ?", "% "+t+" %")
	}
	var docs []Document
	if err := q.Order("id").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	return docs, nil
}
