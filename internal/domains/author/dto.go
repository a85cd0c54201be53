package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateAuthorReq - POST /authors
type CreateAuthorReq struct {
	Name string `json:"name"`
}

func (r CreateAuthorReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateAuthorReq - PATCH /authors/:id (partial)
type UpdateAuthorReq struct {
	Name *string `json:"name"`
}

func (r UpdateAuthorReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type AuthorResp struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResp(a *Author) AuthorResp {
	return AuthorResp{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToRespList(authors []Author) []AuthorResp {
	resps := make([]AuthorResp, 0, len(authors))
	for i := range authors {
		resps = append(resps, ToResp(&authors[i]))
	}
	return resps
}
