package core

import "errors"

// Error kinds. Every error returned by this module wraps exactly one of these
// and can be matched with errors.Is.
var (
	// ErrType is returned when a column has the wrong kind for an operation.
	ErrType = errors.New("type error")

	// ErrRange is returned for invalid numeric bounds or when no numeric column is present.
	ErrRange = errors.New("range error")

	// ErrKey is returned when a referenced column does not exist.
	ErrKey = errors.New("key error")

	// ErrArithmetic is returned on division by an exact zero.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrConflict is returned when a generated column name is already taken.
	ErrConflict = errors.New("conflict error")

	// ErrNotFitted is returned when a stateful stage is asked to transform without a fitted state.
	ErrNotFitted = errors.New("stage not fitted")
)
