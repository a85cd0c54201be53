package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libreria-backend/internal/domains/genre"
	"libreria-backend/internal/infrastructure/database"
	"libreria-backend/pkg/cache"
	"libreria-backend/pkg/logger"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheKeyAll  = "genres:all"
	cachePattern = "genres:*"
)

type postgresRepository struct {
	pool  database.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool database.Pool, cache cache.Cache) genre.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Create(ctx context.Context, name string) (*genre.Genre, error) {
	const query = `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at, deleted_at`

	created, err := scanGenre(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, genre.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	r.invalidate(ctx)
	return created, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]genre.Genre, error) {
	var cached []genre.Genre
	if hit, err := r.cache.Get(ctx, cacheKeyAll, &cached); err == nil && hit {
		return cached, nil
	}

	const query = `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM genres
		WHERE deleted_at IS NULL
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]genre.Genre, 0)
	for rows.Next() {
		entity := genre.Genre{}
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKeyAll, genres, cacheTTL); err != nil {
		logger.Error("genres cache set failed", err)
	}

	return genres, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	key := "genres:" + id.String()

	cached := &genre.Genre{}
	if hit, err := r.cache.Get(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	const query = `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM genres
		WHERE id = $1 AND deleted_at IS NULL`

	entity, err := scanGenre(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	if err := r.cache.Set(ctx, key, entity, cacheTTL); err != nil {
		logger.Error("genre cache set failed", err)
	}

	return entity, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, name string) (*genre.Genre, error) {
	const query = `
		UPDATE genres
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, created_at, updated_at, deleted_at`

	updated, err := scanGenre(r.pool.QueryRow(ctx, query, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, genre.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	r.invalidate(ctx)
	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE genres
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return genre.ErrNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, cachePattern); err != nil {
		logger.Error("genres cache invalidation failed", err)
	}
}

func scanGenre(row pgx.Row) (*genre.Genre, error) {
	entity := &genre.Genre{}
	err := row.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt)
	if err != nil {
		return nil, err
	}
	return entity, nil
}
