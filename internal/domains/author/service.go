package author

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateAuthorReq) (*AuthorResp, error)
	FindAll(ctx context.Context) ([]AuthorResp, error)
	FindOne(ctx context.Context, id uuid.UUID) (*AuthorResp, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorReq) (*AuthorResp, error)
	Remove(ctx context.Context, id uuid.UUID) error
}
