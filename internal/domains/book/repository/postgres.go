package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libreria-backend/internal/domains/book"
	"libreria-backend/internal/infrastructure/database"
)

// detailSelect is the joined view every read goes through.
const detailSelect = `
	SELECT
		b.id, b.title, b.price, b.stock, b.availability, b.published_at,
		b.image_url, b.author_id, b.editorial_id, b.genre_id,
		b.created_by, b.updated_by, b.deleted_by,
		b.created_at, b.updated_at, b.deleted_at,
		a.name AS author_name,
		e.name AS editorial_name,
		g.name AS genre_name,
		cu.email AS created_by_email,
		uu.email AS updated_by_email,
		du.email AS deleted_by_email
	FROM books b
	INNER JOIN authors a ON a.id = b.author_id
	INNER JOIN editorials e ON e.id = b.editorial_id
	INNER JOIN genres g ON g.id = b.genre_id
	LEFT JOIN users cu ON cu.id = b.created_by
	LEFT JOIN users uu ON uu.id = b.updated_by
	LEFT JOIN users du ON du.id = b.deleted_by`

var sortColumns = map[string]string{
	"title":        "b.title",
	"price":        "b.price",
	"stock":        "b.stock",
	"published_at": "b.published_at",
	"created_at":   "b.created_at",
}

type postgresRepository struct {
	pool database.Pool
}

func NewPostgresRepository(pool database.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entity *book.Book) (*book.Detail, error) {
	const query = `
		INSERT INTO books (
			title, price, stock, availability, published_at,
			author_id, editorial_id, genre_id, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		entity.Title,
		entity.Price,
		entity.Stock,
		entity.Availability,
		entity.PublishedAt,
		entity.AuthorID,
		entity.EditorialID,
		entity.GenreID,
		entity.CreatedBy,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, book.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetAll(ctx context.Context, filter *book.Filter) ([]book.Detail, int, error) {
	where := []string{"b.deleted_at IS NULL"}
	args := []interface{}{}
	argIndex := 1

	if filter.AuthorID != nil {
		where = append(where, fmt.Sprintf("b.author_id = $%d", argIndex))
		args = append(args, *filter.AuthorID)
		argIndex++
	}
	if filter.EditorialID != nil {
		where = append(where, fmt.Sprintf("b.editorial_id = $%d", argIndex))
		args = append(args, *filter.EditorialID)
		argIndex++
	}
	if filter.GenreID != nil {
		where = append(where, fmt.Sprintf("b.genre_id = $%d", argIndex))
		args = append(args, *filter.GenreID)
		argIndex++
	}
	if filter.Available != nil {
		if *filter.Available {
			where = append(where, "b.stock > 0")
		} else {
			where = append(where, "b.stock = 0")
		}
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("b.title ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books b %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "b.created_at"
	}

	listQuery := fmt.Sprintf(`%s
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		detailSelect, whereClause, sortColumn, filter.SortDir, argIndex, argIndex+1)

	listArgs := append(args, filter.Limit, filter.Offset())
	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	details, err := scanDetails(rows)
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Detail, error) {
	query := detailSelect + `
		WHERE b.id = $1 AND b.deleted_at IS NULL`

	detail, err := scanDetail(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return detail, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *book.Book) (*book.Detail, error) {
	const query = `
		UPDATE books
		SET title = $2, price = $3, stock = $4, availability = $5,
			published_at = $6, author_id = $7, editorial_id = $8, genre_id = $9,
			updated_by = $10, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Title,
		entity.Price,
		entity.Stock,
		entity.Availability,
		entity.PublishedAt,
		entity.AuthorID,
		entity.EditorialID,
		entity.GenreID,
		entity.UpdatedBy,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, book.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	const query = `
		UPDATE books
		SET deleted_at = NOW(), deleted_by = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) GetAvailable(ctx context.Context) ([]book.Detail, error) {
	query := detailSelect + `
		WHERE b.deleted_at IS NULL AND b.availability = true AND b.stock > 0
		ORDER BY b.title ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

func (r *postgresRepository) GetByImageName(ctx context.Context, name string) (*book.Detail, error) {
	query := detailSelect + `
		WHERE b.deleted_at IS NULL AND b.image_url LIKE '%' || $1`

	detail, err := scanDetail(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by image: %w", err)
	}

	return detail, nil
}

func (r *postgresRepository) SetImageURL(ctx context.Context, id uuid.UUID, url string, actorID uuid.UUID) error {
	const query = `
		UPDATE books
		SET image_url = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id, url, actorID)
	if err != nil {
		return fmt.Errorf("failed to set image url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}

	return nil
}

// SellStock is the hot path: a single conditional UPDATE guarantees stock
// never goes negative no matter how many sales race on the same row.
func (r *postgresRepository) SellStock(ctx context.Context, id uuid.UUID, qty int, actorID uuid.UUID) (*book.Detail, error) {
	const query = `
		UPDATE books
		SET stock = stock - $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND availability = true AND stock >= $2
		RETURNING id`

	var updatedID uuid.UUID
	err := r.pool.QueryRow(ctx, query, id, qty, actorID).Scan(&updatedID)
	if err == nil {
		return r.GetByID(ctx, updatedID)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to sell book: %w", err)
	}

	// The guard rejected the sale: find out why for an exact error.
	return nil, r.diagnoseSellFailure(ctx, id, qty)
}

func (r *postgresRepository) diagnoseSellFailure(ctx context.Context, id uuid.UUID, qty int) error {
	const query = `
		SELECT stock, availability
		FROM books
		WHERE id = $1 AND deleted_at IS NULL`

	var stock int
	var availability bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&stock, &availability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.ErrNotFound
		}
		return fmt.Errorf("failed to check book stock: %w", err)
	}

	if !availability {
		return book.ErrNotAvailable
	}

	return &book.InsufficientStockError{Available: stock, Requested: qty}
}

func (r *postgresRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int, actorID uuid.UUID) (*book.Detail, error) {
	const query = `
		UPDATE books
		SET stock = stock + $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND stock + $2 >= 0
		RETURNING id`

	var updatedID uuid.UUID
	err := r.pool.QueryRow(ctx, query, id, delta, actorID).Scan(&updatedID)
	if err == nil {
		return r.GetByID(ctx, updatedID)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	const existsQuery = `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return nil, book.ErrNotFound
	}

	return nil, book.ErrStockInsufficient
}

func scanDetail(row pgx.Row) (*book.Detail, error) {
	detail := &book.Detail{}
	err := row.Scan(
		&detail.ID,
		&detail.Title,
		&detail.Price,
		&detail.Stock,
		&detail.Availability,
		&detail.PublishedAt,
		&detail.ImageURL,
		&detail.AuthorID,
		&detail.EditorialID,
		&detail.GenreID,
		&detail.CreatedBy,
		&detail.UpdatedBy,
		&detail.DeletedBy,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.DeletedAt,
		&detail.AuthorName,
		&detail.EditorialName,
		&detail.GenreName,
		&detail.CreatedByEmail,
		&detail.UpdatedByEmail,
		&detail.DeletedByEmail,
	)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func scanDetails(rows pgx.Rows) ([]book.Detail, error) {
	details := make([]book.Detail, 0)
	for rows.Next() {
		detail := book.Detail{}
		err := rows.Scan(
			&detail.ID,
			&detail.Title,
			&detail.Price,
			&detail.Stock,
			&detail.Availability,
			&detail.PublishedAt,
			&detail.ImageURL,
			&detail.AuthorID,
			&detail.EditorialID,
			&detail.GenreID,
			&detail.CreatedBy,
			&detail.UpdatedBy,
			&detail.DeletedBy,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.DeletedAt,
			&detail.AuthorName,
			&detail.EditorialName,
			&detail.GenreName,
			&detail.CreatedByEmail,
			&detail.UpdatedByEmail,
			&detail.DeletedByEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}
	return details, nil
}
