// Package validate runs field-level validation for the drill models and
// reports failures as a field-to-messages mapping.
package validate

import (
	"errors"
	"sort"
	"strings"
)

// NonField is the key used for errors that do not belong to one field.
const NonField = "__all__"

// Error collects validation messages keyed by field name. Messages for a
// field keep the order in which they were added.
type Error struct {
	fields map[string][]string
}

// NewError returns an Error holding a single message.
func NewError(field, message string) *Error {
	e := &Error{}
	e.Add(field, message)
	return e
}

// From converts err into an *Error. A nil err yields an empty Error, an
// *Error is returned as is, and any other error becomes a non-field message.
func From(err error) *Error {
	if err == nil {
		return &Error{}
	}
	var ve *Error
	if errors.As(err, &ve) {
		return ve
	}
	return NewError(NonField, err.Error())
}

// Add appends message to field.
func (e *Error) Add(field, message string) {
	if e.fields == nil {
		e.fields = make(map[string][]string)
	}
	e.fields[field] = append(e.fields[field], message)
}

// Check adds err's message to field when err is non-nil.
func (e *Error) Check(field string, err error) {
	if err != nil {
		e.Add(field, err.Error())
	}
}

// Merge adds every message carried by err.
func (e *Error) Merge(err error) {
	if err == nil {
		return
	}
	other := From(err)
	for _, field := range other.fieldNames() {
		for _, msg := range other.fields[field] {
			e.Add(field, msg)
		}
	}
}

// Empty reports whether no message has been recorded.
func (e *Error) Empty() bool {
	return e == nil || len(e.fields) == 0
}

// OrNil returns e when it carries messages and nil otherwise.
func (e *Error) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Fields returns a copy of the field-to-messages mapping.
func (e *Error) Fields() map[string][]string {
	out := make(map[string][]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Messages returns the messages recorded for field.
func (e *Error) Messages(field string) []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.fields[field]...)
}

// Lines renders one "field: msg1, msg2" line per field, sorted by field.
func (e *Error) Lines() []string {
	names := e.fieldNames()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+": "+strings.Join(e.fields[name], ", "))
	}
	return lines
}

func (e *Error) Error() string {
	return strings.Join(e.Lines(), "\n")
}

func (e *Error) fieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
