package types

import "errors"

// Store lifecycle errors.
var (
	ErrNotAttached     = errors.New("store is not attached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record errors returned by the store and the exercise callers.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record violates a unique constraint")
)

// Exercise lookup errors.
var (
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrUnknownCaller   = errors.New("unknown caller")
	ErrInvalidArgs     = errors.New("invalid caller arguments")
)
