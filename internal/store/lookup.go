package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// IContains returns a case-insensitive substring condition on column. The
// value is matched literally.
func IContains(db *gorm.DB, column, value string) *gorm.DB {
	return db.Where(fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '\'`, column), "%"+likeEscaper.Replace(value)+"%")
}

// IContainsExpr is IContains as a bare expression with its argument, for
// use inside OR groups.
func IContainsExpr(column, value string) (string, string) {
	return fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '\'`, column), "%" + likeEscaper.Replace(value) + "%"
}

// StartsWithExpr is a case-sensitive prefix condition on column.
func StartsWithExpr(column, value string) (string, []any) {
	return fmt.Sprintf("SUBSTR(%s, 1, ?) = ?", column), []any{utf8.RuneCountInString(value), value}
}
