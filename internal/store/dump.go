package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Dump writes every row of the models' tables (and their join tables) to
// <dir>/<table>.jsonl and returns the number of rows written per table.
func (b *Backend) Dump(ctx context.Context, dir string, models ...any) (map[string]int, error) {
	db, err := b.handle(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := TableNames(db, models...)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating dump dir: %w", err)
	}

	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var rows []map[string]any
		if err := db.Table(table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("reading %s: %w", table, err)
		}
		records := make([]json.RawMessage, 0, len(rows))
		for _, row := range rows {
			rec, err := json.Marshal(row)
			if err != nil {
				return nil, fmt.Errorf("encoding %s row: %w", table, err)
			}
			records = append(records, rec)
		}
		if err := writeJSONL(filepath.Join(dir, table+".jsonl"), records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", table, err)
		}
		counts[table] = len(records)
		b.log.Debug("table dumped", "table", table, "rows", len(records))
	}
	return counts, nil
}

// Load inserts the rows of <dir>/<table>.jsonl into each table in one
// transaction. Missing files are skipped, malformed lines are ignored and
// fields that are not columns of the table are dropped.
func (b *Backend) Load(ctx context.Context, dir string, models ...any) (map[string]int, error) {
	db, err := b.handle(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := TableNames(db, models...)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tables))
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			records, err := readJSONL(filepath.Join(dir, table+".jsonl"))
			if err != nil {
				return err
			}
			if len(records) == 0 {
				continue
			}
			n, err := insertRecords(tx, table, records)
			if err != nil {
				return fmt.Errorf("loading %s: %w", table, err)
			}
			counts[table] = n
		}
		return resetSequences(tx, tables)
	})
	if err != nil {
		return nil, err
	}
	b.log.Info("tables loaded", "dir", dir, "tables", len(counts))
	return counts, nil
}

// insertRecords inserts decoded JSONL records into table, keeping only the
// fields that name existing columns.
func insertRecords(tx *gorm.DB, table string, records []json.RawMessage) (int, error) {
	columnTypes, err := tx.Migrator().ColumnTypes(table)
	if err != nil {
		return 0, fmt.Errorf("reading columns: %w", err)
	}
	columns := make(map[string]bool, len(columnTypes))
	for _, ct := range columnTypes {
		columns[ct.Name()] = true
	}

	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		row := make(map[string]any, len(obj))
		for k, v := range obj {
			if columns[k] {
				row[k] = normalizeValue(v)
			}
		}
		if len(row) == 0 {
			continue
		}
		if err := tx.Table(table).Create(row).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// resetSequences moves each table's id sequence past the loaded ids, since
// rows inserted with explicit ids do not advance a PostgreSQL serial. Other
// dialects track this themselves.
func resetSequences(tx *gorm.DB, tables []string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range tables {
		if !tx.Migrator().HasColumn(table, "id") {
			continue
		}
		if err := tx.Exec(sequenceResetSQL(table)).Error; err != nil {
			return fmt.Errorf("resetting %s id sequence: %w", table, err)
		}
	}
	return nil
}

// sequenceResetSQL sets the id sequence of table to MAX(id), or back to 1
// when the table is empty. Tables without a serial id yield a NULL sequence
// name, which setval ignores.
func sequenceResetSQL(table string) string {
	ident := `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
	lit := "'" + strings.ReplaceAll(ident, "'", "''") + "'"
	return fmt.Sprintf("SELECT setval(pg_get_serial_sequence(%s, 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %s", lit, ident)
}

// normalizeValue turns RFC 3339 strings back into times so the driver
// writes them in its own timestamp format.
func normalizeValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return v
}
