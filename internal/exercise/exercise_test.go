package exercise

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

func noop(context.Context, *gorm.DB, []string) (string, error) { return "", nil }

func TestFind(t *testing.T) {
	exs := []Exercise{{Name: "zoo"}, {Name: "hotel"}}

	got, err := Find(exs, "hotel")
	require.NoError(t, err)
	assert.Equal(t, "hotel", got.Name)

	_, err = Find(exs, "circus")
	assert.True(t, errors.Is(err, types.ErrUnknownExercise))
}

func TestExercise_Caller(t *testing.T) {
	ex := Exercise{Name: "zoo", Callers: []Caller{
		{Name: "show", Run: noop},
		{Name: "add", Run: noop},
	}}

	c, err := ex.Caller("show")
	require.NoError(t, err)
	assert.Equal(t, "show", c.Name)

	_, err = ex.Caller("feed")
	assert.True(t, errors.Is(err, types.ErrUnknownCaller))

	assert.Equal(t, []string{"add", "show"}, ex.CallerNames())
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4.5, "4.5"},
		{5, "5.0"},
		{0, "0.0"},
		{4.15, "4.15"},
		{-2, "-2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Float(tt.in))
		})
	}
	assert.Equal(t, "4.20", Fixed(4.2, 2))
}

func TestArgs(t *testing.T) {
	args := []string{"7", "x"}

	assert.Equal(t, "x", Arg(args, 1))
	assert.Equal(t, "", Arg(args, 5))

	n, err := IntArg(args, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = IntArg(args, 1)
	assert.True(t, errors.Is(err, types.ErrInvalidArgs))

	id, err := UintArg(args, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	assert.NoError(t, NeedArgs(args, 2, "a b"))
	assert.True(t, errors.Is(NeedArgs(args, 3, "a b c"), types.ErrInvalidArgs))
}

func TestDates(t *testing.T) {
	d := Date(2025, time.July, 3)
	assert.Equal(t, "2025-07-03", FormatDate(d))

	parsed, err := ParseDate("2025-07-03")
	require.NoError(t, err)
	assert.True(t, time.Time(parsed).Equal(time.Time(d)))

	_, err = ParseDate("03.07.2025")
	assert.True(t, errors.Is(err, types.ErrInvalidArgs))

	from, to := YearRange(2025)
	assert.Equal(t, "2025-01-01", FormatDate(from))
	assert.Equal(t, "2026-01-01", FormatDate(to))
}

func TestReport(t *testing.T) {
	ve := validate.NewError("title", "Too short.")
	ve.Add("isbn", "Too short.")

	got, err := Report(ve)
	require.NoError(t, err)
	assert.Equal(t, "isbn: Too short.\ntitle: Too short.", got)

	boom := errors.New("boom")
	_, err = Report(boom)
	assert.Equal(t, boom, err)
}
