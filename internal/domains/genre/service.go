package genre

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateGenreReq) (*GenreResp, error)
	FindAll(ctx context.Context) ([]GenreResp, error)
	FindOne(ctx context.Context, id uuid.UUID) (*GenreResp, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateGenreReq) (*GenreResp, error)
	Remove(ctx context.Context, id uuid.UUID) error
}
