package editorial

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name string) (*Editorial, error)
	GetAll(ctx context.Context) ([]Editorial, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Editorial, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*Editorial, error)
	// SoftDelete stamps deleted_at; the row keeps serving old book joins.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
