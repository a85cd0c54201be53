package book

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, entity *Book) (*Detail, error)
	GetAll(ctx context.Context, filter *Filter) ([]Detail, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Detail, error)
	Update(ctx context.Context, entity *Book) (*Detail, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error

	// GetAvailable lists books with stock, title ascending.
	GetAvailable(ctx context.Context) ([]Detail, error)

	// GetByImageName finds the book whose image_url ends in the given file name.
	GetByImageName(ctx context.Context, name string) (*Detail, error)

	// SetImageURL stores the cover URL after an upload.
	SetImageURL(ctx context.Context, id uuid.UUID, url string, actorID uuid.UUID) error

	// SellStock decrements stock by qty in a single conditional update so two
	// concurrent sales can never oversell. Fails with ErrNotFound,
	// ErrNotAvailable or *InsufficientStockError.
	SellStock(ctx context.Context, id uuid.UUID, qty int, actorID uuid.UUID) (*Detail, error)

	// AdjustStock applies a delta guarded by stock + delta >= 0.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int, actorID uuid.UUID) (*Detail, error)
}
