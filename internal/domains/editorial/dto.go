package editorial

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateEditorialReq - POST /editorials
type CreateEditorialReq struct {
	Name string `json:"name"`
}

func (r CreateEditorialReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateEditorialReq - PATCH /editorials/:id (partial)
type UpdateEditorialReq struct {
	Name *string `json:"name"`
}

func (r UpdateEditorialReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type EditorialResp struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResp(a *Editorial) EditorialResp {
	return EditorialResp{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToRespList(editorials []Editorial) []EditorialResp {
	resps := make([]EditorialResp, 0, len(editorials))
	for i := range editorials {
		resps = append(resps, ToResp(&editorials[i]))
	}
	return resps
}
