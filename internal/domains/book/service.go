package book

import (
	"context"

	"github.com/google/uuid"

	"libreria-backend/internal/shared/response"
)

type Service interface {
	Create(ctx context.Context, req *CreateBookReq, actorID uuid.UUID) (*BookResp, error)
	FindAll(ctx context.Context, filter *Filter) (*response.Paginated, error)
	FindOne(ctx context.Context, id uuid.UUID) (*BookResp, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateBookReq, actorID uuid.UUID) (*BookResp, error)
	Remove(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error

	FindAvailable(ctx context.Context) ([]BookResp, error)

	// Sell processes a sale of qty units.
	Sell(ctx context.Context, id uuid.UUID, qty int, actorID uuid.UUID) (*SellResp, error)

	// UpdateStock applies a stock delta, rejecting drops below zero.
	UpdateStock(ctx context.Context, id uuid.UUID, delta int, actorID uuid.UUID) (*BookResp, error)

	// ExportCSV renders the filtered catalog as CSV.
	ExportCSV(ctx context.Context, filter *Filter) ([]byte, error)
}
