package editorial

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateEditorialReq) (*EditorialResp, error)
	FindAll(ctx context.Context) ([]EditorialResp, error)
	FindOne(ctx context.Context, id uuid.UUID) (*EditorialResp, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateEditorialReq) (*EditorialResp, error)
	Remove(ctx context.Context, id uuid.UUID) error
}
