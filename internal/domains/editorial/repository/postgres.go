package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libreria-backend/internal/domains/editorial"
	"libreria-backend/internal/infrastructure/database"
	"libreria-backend/pkg/cache"
	"libreria-backend/pkg/logger"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheKeyAll  = "editorials:all"
	cachePattern = "editorials:*"
)

type postgresRepository struct {
	pool  database.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool database.Pool, cache cache.Cache) editorial.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Create(ctx context.Context, name string) (*editorial.Editorial, error) {
	const query = `
		INSERT INTO editorials (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at, deleted_at`

	created, err := scanEditorial(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, editorial.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create editorial: %w", err)
	}

	r.invalidate(ctx)
	return created, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]editorial.Editorial, error) {
	var cached []editorial.Editorial
	if hit, err := r.cache.Get(ctx, cacheKeyAll, &cached); err == nil && hit {
		return cached, nil
	}

	const query = `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM editorials
		WHERE deleted_at IS NULL
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list editorials: %w", err)
	}
	defer rows.Close()

	editorials := make([]editorial.Editorial, 0)
	for rows.Next() {
		entity := editorial.Editorial{}
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan editorial: %w", err)
		}
		editorials = append(editorials, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list editorials: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKeyAll, editorials, cacheTTL); err != nil {
		logger.Error("editorials cache set failed", err)
	}

	return editorials, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*editorial.Editorial, error) {
	key := "editorials:" + id.String()

	cached := &editorial.Editorial{}
	if hit, err := r.cache.Get(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	const query = `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM editorials
		WHERE id = $1 AND deleted_at IS NULL`

	entity, err := scanEditorial(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, editorial.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get editorial: %w", err)
	}

	if err := r.cache.Set(ctx, key, entity, cacheTTL); err != nil {
		logger.Error("editorial cache set failed", err)
	}

	return entity, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, name string) (*editorial.Editorial, error) {
	const query = `
		UPDATE editorials
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, created_at, updated_at, deleted_at`

	updated, err := scanEditorial(r.pool.QueryRow(ctx, query, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, editorial.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, editorial.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update editorial: %w", err)
	}

	r.invalidate(ctx)
	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE editorials
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete editorial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return editorial.ErrNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, cachePattern); err != nil {
		logger.Error("editorials cache invalidation failed", err)
	}
}

func scanEditorial(row pgx.Row) (*editorial.Editorial, error) {
	entity := &editorial.Editorial{}
	err := row.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt)
	if err != nil {
		return nil, err
	}
	return entity, nil
}
