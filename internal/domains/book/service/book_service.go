package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libreria-backend/internal/domains/author"
	"libreria-backend/internal/domains/book"
	"libreria-backend/internal/domains/editorial"
	"libreria-backend/internal/domains/genre"
	"libreria-backend/internal/shared/response"
	"libreria-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type bookServiceImpl struct {
	repository book.Repository
	authors    author.Repository
	editorials editorial.Repository
	genres     genre.Repository
}

func NewBookService(
	repo book.Repository,
	authors author.Repository,
	editorials editorial.Repository,
	genres genre.Repository,
) book.Service {
	return &bookServiceImpl{
		repository: repo,
		authors:    authors,
		editorials: editorials,
		genres:     genres,
	}
}

func (s *bookServiceImpl) Create(ctx context.Context, req *book.CreateBookReq, actorID uuid.UUID) (*book.BookResp, error) {
	if err := s.checkReferences(ctx, &req.AuthorID, &req.EditorialID, &req.GenreID); err != nil {
		return nil, err
	}

	publishedAt, err := time.Parse(dateLayout, req.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("create book: invalid published_at: %w", err)
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	entity := &book.Book{
		Title:        req.Title,
		Price:        req.Price,
		Stock:        req.Stock,
		Availability: availability,
		PublishedAt:  publishedAt,
		AuthorID:     req.AuthorID,
		EditorialID:  req.EditorialID,
		GenreID:      req.GenreID,
		CreatedBy:    &actorID,
	}

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	resp := book.ToResp(created)
	return &resp, nil
}

func (s *bookServiceImpl) FindAll(ctx context.Context, filter *book.Filter) (*response.Paginated, error) {
	filter.Normalize()

	details, total, err := s.repository.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / filter.Limit
	if total%filter.Limit != 0 {
		totalPages++
	}

	return &response.Paginated{
		Data: book.ToRespList(details),
		Meta: response.Meta{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    filter.Page < totalPages,
			HasPrev:    filter.Page > 1,
		},
	}, nil
}

func (s *bookServiceImpl) FindOne(ctx context.Context, id uuid.UUID) (*book.BookResp, error) {
	detail, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := book.ToResp(detail)
	return &resp, nil
}

func (s *bookServiceImpl) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookReq, actorID uuid.UUID) (*book.BookResp, error) {
	current, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only re-validate references that actually change.
	if err := s.checkReferences(ctx, req.AuthorID, req.EditorialID, req.GenreID); err != nil {
		return nil, err
	}

	entity := current.Book
	if req.Title != nil {
		entity.Title = *req.Title
	}
	if req.Price != nil {
		entity.Price = *req.Price
	}
	if req.Stock != nil {
		entity.Stock = *req.Stock
	}
	if req.Availability != nil {
		entity.Availability = *req.Availability
	}
	if req.PublishedAt != nil {
		publishedAt, err := time.Parse(dateLayout, *req.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("update book: invalid published_at: %w", err)
		}
		entity.PublishedAt = publishedAt
	}
	if req.AuthorID != nil {
		entity.AuthorID = *req.AuthorID
	}
	if req.EditorialID != nil {
		entity.EditorialID = *req.EditorialID
	}
	if req.GenreID != nil {
		entity.GenreID = *req.GenreID
	}
	entity.UpdatedBy = &actorID

	updated, err := s.repository.Update(ctx, &entity)
	if err != nil {
		return nil, err
	}

	resp := book.ToResp(updated)
	return &resp, nil
}

func (s *bookServiceImpl) Remove(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	return s.repository.SoftDelete(ctx, id, actorID)
}

func (s *bookServiceImpl) FindAvailable(ctx context.Context) ([]book.BookResp, error) {
	details, err := s.repository.GetAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return book.ToRespList(details), nil
}

func (s *bookServiceImpl) Sell(ctx context.Context, id uuid.UUID, qty int, actorID uuid.UUID) (*book.SellResp, error) {
	if qty <= 0 {
		return nil, book.ErrInvalidQuantity
	}

	detail, err := s.repository.SellStock(ctx, id, qty, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("book sold", map[string]interface{}{
		"book_id":  id.String(),
		"quantity": qty,
		"stock":    detail.Stock,
	})

	return &book.SellResp{
		Message:        "Venta procesada exitosamente",
		Book:           book.ToResp(detail),
		SoldQuantity:   qty,
		RemainingStock: detail.Stock,
	}, nil
}

func (s *bookServiceImpl) UpdateStock(ctx context.Context, id uuid.UUID, delta int, actorID uuid.UUID) (*book.BookResp, error) {
	detail, err := s.repository.AdjustStock(ctx, id, delta, actorID)
	if err != nil {
		return nil, err
	}

	resp := book.ToResp(detail)
	return &resp, nil
}

var csvHeaders = []string{
	"Título", "Autor", "Editorial", "Género", "Precio", "Stock", "Disponible", "Publicado",
}

func (s *bookServiceImpl) ExportCSV(ctx context.Context, filter *book.Filter) ([]byte, error) {
	filter.Normalize()
	filter.Page = 1
	filter.Limit = 100

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}

	for {
		details, total, err := s.repository.GetAll(ctx, filter)
		if err != nil {
			return nil, err
		}

		for i := range details {
			d := &details[i]
			available := "No"
			if d.Availability && d.Stock > 0 {
				available = "Sí"
			}
			record := []string{
				d.Title,
				d.AuthorName,
				d.EditorialName,
				d.GenreName,
				d.Price.StringFixed(2),
				fmt.Sprintf("%d", d.Stock),
				available,
				d.PublishedAt.Format(dateLayout),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("export csv: %w", err)
			}
		}

		if filter.Page*filter.Limit >= total {
			break
		}
		filter.Page++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}

	return buf.Bytes(), nil
}

// checkReferences verifies the referenced author, editorial and genre exist.
// nil ids are skipped.
func (s *bookServiceImpl) checkReferences(ctx context.Context, authorID, editorialID, genreID *uuid.UUID) error {
	if authorID != nil {
		if _, err := s.authors.GetByID(ctx, *authorID); err != nil {
			return &book.ReferenceError{Entity: "Autor", ID: *authorID}
		}
	}
	if editorialID != nil {
		if _, err := s.editorials.GetByID(ctx, *editorialID); err != nil {
			return &book.ReferenceError{Entity: "Editorial", ID: *editorialID}
		}
	}
	if genreID != nil {
		if _, err := s.genres.GetByID(ctx, *genreID); err != nil {
			return &book.ReferenceError{Entity: "Género", ID: *genreID}
		}
	}
	return nil
}
