package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Book struct {
	ID           uuid.UUID
	Title        string
	Price        decimal.Decimal
	Stock        int
	Availability bool
	PublishedAt  time.Time
	ImageURL     *string
	AuthorID     uuid.UUID
	EditorialID  uuid.UUID
	GenreID      uuid.UUID
	CreatedBy    *uuid.UUID
	UpdatedBy    *uuid.UUID
	DeletedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Detail is the joined view: names instead of bare foreign keys, and the
// emails of the users who touched the row.
type Detail struct {
	Book
	AuthorName     string
	EditorialName  string
	GenreName      string
	CreatedByEmail *string
	UpdatedByEmail *string
	DeletedByEmail *string
}
