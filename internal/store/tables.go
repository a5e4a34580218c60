package store

import (
	"fmt"

	"gorm.io/gorm"
)

// TableName returns the table GORM maps model to.
func TableName(db *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", fmt.Errorf("parsing model %T: %w", model, err)
	}
	return stmt.Schema.Table, nil
}

// TableNames returns the tables of models in order, followed by the join
// tables of their many-to-many relations. Join tables come last so loading
// in this order satisfies foreign keys when models are listed parents first.
func TableNames(db *gorm.DB, models ...any) ([]string, error) {
	var tables, joins []string
	seen := make(map[string]bool)
	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parsing model %T: %w", model, err)
		}
		if !seen[stmt.Schema.Table] {
			seen[stmt.Schema.Table] = true
			tables = append(tables, stmt.Schema.Table)
		}
		for _, rel := range stmt.Schema.Relationships.Many2Many {
			if rel.JoinTable == nil || seen[rel.JoinTable.Table] {
				continue
			}
			seen[rel.JoinTable.Table] = true
			joins = append(joins, rel.JoinTable.Table)
		}
	}
	return append(tables, joins...), nil
}

// Bulk returns a session that skips model hooks. Set-based updates run
// through it so that save-time validation does not fire on the zero model
// GORM uses to carry the table.
func Bulk(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{SkipHooks: true})
}
