package file

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExtension rejects anything but jpg/jpeg/png/gif.
	ErrInvalidExtension = errors.New("La extensión del archivo no es válida")

	// ErrFileTooLarge rejects uploads above the configured limit.
	ErrFileTooLarge = errors.New("El archivo excede el tamaño máximo permitido")

	// ErrInvalidImage rejects payloads that do not decode as an image.
	ErrInvalidImage = errors.New("El archivo no es una imagen válida")
)

// NoBookError is returned when no book references the requested image.
type NoBookError struct {
	Name string
}

func (e *NoBookError) Error() string {
	return fmt.Sprintf("No book found with image %s", e.Name)
}
