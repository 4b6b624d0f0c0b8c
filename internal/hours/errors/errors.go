package errors

import "errors"

var (
	ErrNotFound = errors.New("operating hours not found")

	// ErrInvalidTime marks a stored open/close value that is not HH:MM.
	ErrInvalidTime = errors.New("invalid operating hours time")
)
