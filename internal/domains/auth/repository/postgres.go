package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"libreria-backend/internal/domains/auth"
	"libreria-backend/internal/infrastructure/database"
)

const userColumns = `
	id, email, password_hash, name, refresh_token, roles, is_active,
	created_at, updated_at, deleted_at`

type postgresRepository struct {
	pool database.Pool
}

func NewPostgresRepository(pool database.Pool) auth.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	const query = `
		INSERT INTO users (email, password_hash, name, roles)
		VALUES ($1, $2, $3, $4)
		RETURNING` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		pq.Array(user.Roles),
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, auth.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	const query = `
		SELECT` + userColumns + `
		FROM users
		WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	const query = `
		SELECT` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *postgresRepository) GetByIDAndRefreshToken(ctx context.Context, id uuid.UUID, token string) (*auth.User, error) {
	const query = `
		SELECT` + userColumns + `
		FROM users
		WHERE id = $1 AND refresh_token = $2 AND is_active = true AND deleted_at IS NULL`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by refresh token: %w", err)
	}

	return user, nil
}

func (r *postgresRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	const query = `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.RefreshToken,
		pq.Array(&user.Roles),
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
