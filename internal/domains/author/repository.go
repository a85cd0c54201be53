package author

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name string) (*Author, error)
	GetAll(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*Author, error)
	// SoftDelete stamps deleted_at; the row keeps serving old book joins.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
