package auth

import "errors"

var (
	// ErrEmailTaken is returned when registering an email that already has an
	// active account.
	ErrEmailTaken = errors.New("El email ya está registrado")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("Credenciales inválidas")

	// ErrInvalidRefreshToken covers expired, forged, rotated-out and
	// logged-out refresh tokens alike.
	ErrInvalidRefreshToken = errors.New("Token de refresh inválido")

	// ErrUserNotFound is an internal sentinel, never shown to clients.
	ErrUserNotFound = errors.New("user not found")
)
