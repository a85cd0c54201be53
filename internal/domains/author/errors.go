package author

import "errors"

var (
	// ErrNotFound is mapped to a 404 naming the requested id.
	ErrNotFound = errors.New("author not found")

	// ErrDuplicateName is the user-facing conflict message.
	ErrDuplicateName = errors.New("Ya existe un autor con ese nombre")
)
