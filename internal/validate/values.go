package validate

import "errors"

// Range returns a validator that accepts values in [min, max] and fails
// with message otherwise.
func Range(min, max float64, message string) func(float64) error {
	return func(v float64) error {
		if v < min || v > max {
			return errors.New(message)
		}
		return nil
	}
}

// ReleaseYear returns a validator that accepts years in [min, max].
func ReleaseYear(min, max int, message string) func(int) error {
	return func(year int) error {
		if year < min || year > max {
			return errors.New(message)
		}
		return nil
	}
}
