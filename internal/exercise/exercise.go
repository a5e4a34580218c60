// Package exercise defines the registry types shared by every drill: the
// models an exercise migrates, its fixture data and the named callers the
// CLI can run.
package exercise

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// RunFunc executes a caller against db. The returned string is the
// caller's output.
type RunFunc func(ctx context.Context, db *gorm.DB, args []string) (string, error)

// Caller is a named query or mutation of an exercise.
type Caller struct {
	Name  string
	Usage string // argument synopsis, empty when the caller takes none
	Run   RunFunc
}

// Exercise groups the models, data migrations, fixture and callers of one
// drill.
type Exercise struct {
	Name       string
	Summary    string
	Models     []any // parents before children
	Migrations []store.DataMigration
	Populate   func(ctx context.Context, db *gorm.DB) error
	Callers    []Caller
}

// Caller returns the caller registered under name.
func (e Exercise) Caller(name string) (Caller, error) {
	for _, c := range e.Callers {
		if c.Name == name {
			return c, nil
		}
	}
	return Caller{}, fmt.Errorf("%s/%s: %w", e.Name, name, types.ErrUnknownCaller)
}

// CallerNames returns the caller names sorted alphabetically.
func (e Exercise) CallerNames() []string {
	names := make([]string, 0, len(e.Callers))
	for _, c := range e.Callers {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Find returns the exercise called name.
func Find(exercises []Exercise, name string) (Exercise, error) {
	for _, e := range exercises {
		if e.Name == name {
			return e, nil
		}
	}
	return Exercise{}, fmt.Errorf("%s: %w", name, types.ErrUnknownExercise)
}

// Float renders f the way the drill outputs print floats: shortest form,
// always with a fractional part.
func Float(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Fixed renders f with exactly places decimals.
func Fixed(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}

// Arg returns args[i], or "" when it is missing.
func Arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// NeedArgs fails with types.ErrInvalidArgs unless args holds at least n
// values.
func NeedArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%w: usage: %s", types.ErrInvalidArgs, usage)
	}
	return nil
}

// IntArg parses args[i] as an int.
func IntArg(args []string, i int) (int, error) {
	v, err := strconv.Atoi(Arg(args, i))
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: %v", types.ErrInvalidArgs, i+1, err)
	}
	return v, nil
}

// UintArg parses args[i] as a row id.
func UintArg(args []string, i int) (uint, error) {
	v, err := strconv.ParseUint(Arg(args, i), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: %v", types.ErrInvalidArgs, i+1, err)
	}
	return uint(v), nil
}

// Lines joins output lines with newlines.
func Lines(lines []string) string {
	return strings.Join(lines, "\n")
}

// NoArgs adapts a caller that takes no arguments.
func NoArgs(fn func(context.Context, *gorm.DB) (string, error)) RunFunc {
	return func(ctx context.Context, db *gorm.DB, _ []string) (string, error) {
		return fn(ctx, db)
	}
}

// Report renders a validation failure as "field: messages" lines. Any
// other error is returned unchanged.
func Report(err error) (string, error) {
	var ve *validate.Error
	if errors.As(err, &ve) {
		return Lines(ve.Lines()), nil
	}
	return "", err
}
