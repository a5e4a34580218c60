package exercise

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// Date returns the calendar day as a UTC date value.
func Date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Today returns the current UTC day.
func Today() datatypes.Date {
	y, m, d := time.Now().UTC().Date()
	return Date(y, m, d)
}

// YearRange returns the first day of year and of the year after it, for
// half-open year filters.
func YearRange(year int) (datatypes.Date, datatypes.Date) {
	return Date(year, time.January, 1), Date(year+1, time.January, 1)
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD argument.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("%w: date %q: %v", types.ErrInvalidArgs, s, err)
	}
	return datatypes.Date(t), nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
