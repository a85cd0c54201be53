package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the account row. PasswordHash and RefreshToken never leave the
// service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         *string
	RefreshToken *string
	Roles        []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// DisplayName returns the name or falls back to the email local part owner.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
