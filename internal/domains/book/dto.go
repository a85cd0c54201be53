package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateBookReq - POST /books
type CreateBookReq struct {
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Availability *bool           `json:"availability"`
	PublishedAt  string          `json:"published_at"`
	AuthorID     uuid.UUID       `json:"author_id"`
	EditorialID  uuid.UUID       `json:"editorial_id"`
	GenreID      uuid.UUID       `json:"genre_id"`
}

func (r CreateBookReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Price, validation.By(nonNegativePrice)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.PublishedAt, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.AuthorID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&r.EditorialID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&r.GenreID, validation.Required, validation.By(notNilUUID)),
	)
}

// UpdateBookReq - PATCH /books/:id (partial)
type UpdateBookReq struct {
	Title        *string          `json:"title"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock"`
	Availability *bool            `json:"availability"`
	PublishedAt  *string          `json:"published_at"`
	AuthorID     *uuid.UUID       `json:"author_id"`
	EditorialID  *uuid.UUID       `json:"editorial_id"`
	GenreID      *uuid.UUID       `json:"genre_id"`
}

func (r UpdateBookReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Price, validation.By(nonNegativePricePtr)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.PublishedAt, validation.Date(dateLayout)),
	)
}

// UpdateStockReq - PATCH /books/:id/stock
// Stock is a delta: positive restocks, negative removes.
type UpdateStockReq struct {
	Stock int `json:"stock"`
}

func (r UpdateStockReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Stock, validation.Required),
	)
}

// SellReq - POST /books/:id/sell
type SellReq struct {
	Quantity int `json:"quantity"`
}

// Filter narrows and pages GET /books.
type Filter struct {
	AuthorID    *uuid.UUID
	EditorialID *uuid.UUID
	GenreID     *uuid.UUID
	Available   *bool
	Search      string
	SortBy      string
	SortDir     string
	Page        int
	Limit       int
}

// Normalize clamps pagination and fills sort defaults.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if f.SortDir != "ASC" && f.SortDir != "DESC" {
		f.SortDir = "DESC"
	}
}

func (f *Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type BookResp struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Availability   bool            `json:"availability"`
	PublishedAt    string          `json:"published_at"`
	ImageURL       *string         `json:"image_url"`
	AuthorID       uuid.UUID       `json:"author_id"`
	AuthorName     string          `json:"author_name"`
	EditorialID    uuid.UUID       `json:"editorial_id"`
	EditorialName  string          `json:"editorial_name"`
	GenreID        uuid.UUID       `json:"genre_id"`
	GenreName      string          `json:"genre_name"`
	CreatedByEmail *string         `json:"created_by_email"`
	UpdatedByEmail *string         `json:"updated_by_email"`
	DeletedByEmail *string         `json:"deleted_by_email,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SellResp - POST /books/:id/sell
type SellResp struct {
	Message        string   `json:"message"`
	Book           BookResp `json:"book"`
	SoldQuantity   int      `json:"soldQuantity"`
	RemainingStock int      `json:"remainingStock"`
}

func ToResp(d *Detail) BookResp {
	return BookResp{
		ID:             d.ID,
		Title:          d.Title,
		Price:          d.Price,
		Stock:          d.Stock,
		Availability:   d.Availability,
		PublishedAt:    d.PublishedAt.Format(dateLayout),
		ImageURL:       d.ImageURL,
		AuthorID:       d.AuthorID,
		AuthorName:     d.AuthorName,
		EditorialID:    d.EditorialID,
		EditorialName:  d.EditorialName,
		GenreID:        d.GenreID,
		GenreName:      d.GenreName,
		CreatedByEmail: d.CreatedByEmail,
		UpdatedByEmail: d.UpdatedByEmail,
		DeletedByEmail: d.DeletedByEmail,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func ToRespList(details []Detail) []BookResp {
	resps := make([]BookResp, 0, len(details))
	for i := range details {
		resps = append(resps, ToResp(&details[i]))
	}
	return resps
}

func nonNegativePrice(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_price", "el precio es inválido")
	}
	if price.IsNegative() {
		return validation.NewError("validation_price", "el precio no puede ser negativo")
	}
	return nil
}

func nonNegativePricePtr(value interface{}) error {
	price, ok := value.(*decimal.Decimal)
	if !ok || price == nil {
		return nil
	}
	return nonNegativePrice(*price)
}

func notNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid", "el ID es inválido")
	}
	return nil
}
