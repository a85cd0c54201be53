package auth

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user persistence port.
type Repository interface {
	// Create inserts the user and returns the stored row.
	// Duplicate active email maps to ErrEmailTaken.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByEmail fetches an active, non-deleted user. ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID fetches a non-deleted user regardless of is_active.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByIDAndRefreshToken matches id, the exact stored refresh token and
	// is_active = true in one lookup. ErrUserNotFound when no row matches.
	GetByIDAndRefreshToken(ctx context.Context, id uuid.UUID, token string) (*User, error)

	// UpdateRefreshToken overwrites the stored refresh token. nil clears it.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
}
