package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// TranslateError maps driver and GORM errors onto the sentinel errors in
// pkg/types. Other errors are returned unchanged.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", types.ErrDuplicate, err)
	}
	return err
}

// First loads the first row matching the query into dest and translates a
// missing row into types.ErrNotFound.
func First(db *gorm.DB, dest any) error {
	return TranslateError(db.First(dest).Error)
}
