package auth

import (
	"context"

	"github.com/google/uuid"
)

// Service is the authentication business logic port.
type Service interface {
	Register(ctx context.Context, req *RegisterReq) (*AuthResp, error)
	Login(ctx context.Context, req *LoginReq) (*AuthResp, error)

	// Refresh rotates the token pair. Any failure is ErrInvalidRefreshToken.
	Refresh(ctx context.Context, refreshToken string) (*AuthResp, error)

	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ValidateToken is best-effort: it reports validity, never an error.
	ValidateToken(ctx context.Context, token string) bool

	// GetUser loads a user for the authentication middleware.
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}
