package editorial

import "errors"

var (
	// ErrNotFound is mapped to a 404 naming the requested id.
	ErrNotFound = errors.New("editorial not found")

	// ErrDuplicateName is the user-facing conflict message.
	ErrDuplicateName = errors.New("Ya existe una editorial con ese nombre")
)
