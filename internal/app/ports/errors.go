package ports

import "errors"

// Adapter errors the HTTP layer maps to status codes. ErrNotFound
// becomes 404, ErrConflict 409.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
