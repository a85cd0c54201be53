package genre

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name string) (*Genre, error)
	GetAll(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*Genre, error)
	// SoftDelete stamps deleted_at; the row keeps serving old book joins.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
