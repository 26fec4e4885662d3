package errors

import "errors"

var (
	ErrNotFound = errors.New("receipt not found")

	ErrInvalidID = errors.New("invalid receipt ID format")
)
