package exports

import "errors"

var (
	// ErrNotFound indicates an export record was not found.
	ErrNotFound = errors.New("export not found")

	// ErrInvalidFormat indicates an unsupported export format.
	ErrInvalidFormat = errors.New("invalid export format")
)
