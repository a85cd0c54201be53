package genre

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateGenreReq - POST /genres
type CreateGenreReq struct {
	Name string `json:"name"`
}

func (r CreateGenreReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateGenreReq - PATCH /genres/:id (partial)
type UpdateGenreReq struct {
	Name *string `json:"name"`
}

func (r UpdateGenreReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type GenreResp struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResp(a *Genre) GenreResp {
	return GenreResp{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToRespList(genres []Genre) []GenreResp {
	resps := make([]GenreResp, 0, len(genres))
	for i := range genres {
		resps = append(resps, ToResp(&genres[i]))
	}
	return resps
}
