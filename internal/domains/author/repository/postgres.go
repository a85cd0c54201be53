package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libreria-backend/internal/domains/author"
	"libreria-backend/internal/infrastructure/database"
	"libreria-backend/pkg/cache"
	"libreria-backend/pkg/logger"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheKeyAll  = "authors:all"
	cachePattern = "authors:*"
)

type postgresRepository struct {
	pool  database.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool database.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Create(ctx context.Context, name string) (*author.Author, error) {
	const query = `
		INSERT INTO authors (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at, deleted_at`

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidate(ctx)
	return created, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	var cached []author.Author
	if hit, err := r.cache.Get(ctx, cacheKeyAll, &cached); err == nil && hit {
		return cached, nil
	}

	const query = `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM authors
		WHERE deleted_at IS NULL
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)
	for rows.Next() {
		entity := author.Author{}
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKeyAll, authors, cacheTTL); err != nil {
		logger.Error("authors cache set failed", err)
	}

	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	key := "authors:" + id.String()

	cached := &author.Author{}
	if hit, err := r.cache.Get(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	const query = `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM authors
		WHERE id = $1 AND deleted_at IS NULL`

	entity, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	if err := r.cache.Set(ctx, key, entity, cacheTTL); err != nil {
		logger.Error("author cache set failed", err)
	}

	return entity, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, name string) (*author.Author, error) {
	const query = `
		UPDATE authors
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, created_at, updated_at, deleted_at`

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx)
	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE authors
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, cachePattern); err != nil {
		logger.Error("authors cache invalidation failed", err)
	}
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	entity := &author.Author{}
	err := row.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt)
	if err != nil {
		return nil, err
	}
	return entity, nil
}
