package book

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("Libro no encontrado")
	ErrDuplicateTitle = errors.New("Ya existe un libro con ese título")
	ErrNotAvailable   = errors.New("Libro no disponible")

	// ErrInvalidQuantity rejects sells of zero or negative quantity.
	ErrInvalidQuantity = errors.New("La cantidad debe ser mayor a 0")

	// ErrStockInsufficient is the generic stock guard for manual adjustments.
	ErrStockInsufficient = errors.New("Stock insuficiente")
)

// InsufficientStockError reports how much stock was actually available when
// a sale asked for more.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente. Stock disponible: %d, solicitado: %d", e.Available, e.Requested)
}

// ReferenceError names a missing author, editorial or genre on create/update.
type ReferenceError struct {
	Entity string
	ID     uuid.UUID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s con ID %s no existe", e.Entity, e.ID)
}
