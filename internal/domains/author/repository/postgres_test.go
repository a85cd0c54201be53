package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria-backend/internal/domains/author"
)

// nopCache always misses so the tests exercise the database path.
type nopCache struct {
	invalidations []string
}

func (c *nopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (c *nopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (c *nopCache) Delete(context.Context, ...string) error { return nil }

func (c *nopCache) DeletePattern(_ context.Context, pattern string) error {
	c.invalidations = append(c.invalidations, pattern)
	return nil
}

func (c *nopCache) Ping(context.Context) error { return nil }

var authorColumns = []string{"id", "name", "created_at", "updated_at", "deleted_at"}

func authorRow(id uuid.UUID, name string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(authorColumns).AddRow(id, name, now, now, nil)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

func TestCreate_ReturnsAuthorAndInvalidatesCache(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	cache := &nopCache{}
	repo := NewPostgresRepository(mock, cache)

	id := uuid.New()
	mock.ExpectQuery(`INSERT INTO authors`).
		WithArgs("Frank Herbert").
		WillReturnRows(authorRow(id, "Frank Herbert"))

	created, err := repo.Create(context.Background(), "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, "Frank Herbert", created.Name)
	assert.Equal(t, []string{"authors:*"}, cache.invalidations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateNameMapsUniqueViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgresRepository(mock, &nopCache{})

	mock.ExpectQuery(`INSERT INTO authors`).
		WithArgs("Frank Herbert").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "Frank Herbert")
	assert.ErrorIs(t, err, author.ErrDuplicateName)
}

func TestGetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgresRepository(mock, &nopCache{})

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, name, created_at, updated_at, deleted_at\s+FROM authors\s+WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, author.ErrNotFound)
}

func TestGetAll_ListsActiveAuthors(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgresRepository(mock, &nopCache{})

	rows := pgxmock.NewRows(authorColumns).
		AddRow(uuid.New(), "Frank Herbert", time.Now(), time.Now(), nil).
		AddRow(uuid.New(), "Ursula K. Le Guin", time.Now(), time.Now(), nil)
	mock.ExpectQuery(`SELECT id, name, created_at, updated_at, deleted_at\s+FROM authors\s+WHERE deleted_at IS NULL`).
		WillReturnRows(rows)

	authors, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Frank Herbert", authors[0].Name)
}

func TestSoftDelete_MissingRow(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgresRepository(mock, &nopCache{})

	id := uuid.New()
	mock.ExpectExec(`UPDATE authors\s+SET deleted_at = NOW\(\), updated_at = NOW\(\)`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), id)
	assert.ErrorIs(t, err, author.ErrNotFound)
}

func TestSoftDelete_InvalidatesCache(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	cache := &nopCache{}
	repo := NewPostgresRepository(mock, cache)

	id := uuid.New()
	mock.ExpectExec(`UPDATE authors\s+SET deleted_at = NOW\(\), updated_at = NOW\(\)`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SoftDelete(context.Background(), id))
	assert.Equal(t, []string{"authors:*"}, cache.invalidations)
}
