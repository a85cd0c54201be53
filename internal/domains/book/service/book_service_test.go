package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria-backend/internal/domains/author"
	"libreria-backend/internal/domains/book"
	"libreria-backend/internal/domains/editorial"
	"libreria-backend/internal/domains/genre"
)

// fakeBookRepo keeps books in memory and mirrors the conditional stock
// semantics of the SQL implementation.
type fakeBookRepo struct {
	books map[uuid.UUID]*book.Detail
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uuid.UUID]*book.Detail)}
}

func (r *fakeBookRepo) Create(_ context.Context, entity *book.Book) (*book.Detail, error) {
	for _, d := range r.books {
		if d.Title == entity.Title {
			return nil, book.ErrDuplicateTitle
		}
	}
	detail := &book.Detail{Book: *entity}
	detail.ID = uuid.New()
	detail.CreatedAt = time.Now()
	detail.UpdatedAt = detail.CreatedAt
	r.books[detail.ID] = detail
	return detail, nil
}

func (r *fakeBookRepo) GetAll(_ context.Context, filter *book.Filter) ([]book.Detail, int, error) {
	all := make([]book.Detail, 0, len(r.books))
	for _, d := range r.books {
		all = append(all, *d)
	}
	total := len(all)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*book.Detail, error) {
	if d, ok := r.books[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, book.ErrNotFound
}

func (r *fakeBookRepo) Update(_ context.Context, entity *book.Book) (*book.Detail, error) {
	d, ok := r.books[entity.ID]
	if !ok {
		return nil, book.ErrNotFound
	}
	d.Book = *entity
	copied := *d
	return &copied, nil
}

func (r *fakeBookRepo) SoftDelete(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) GetAvailable(_ context.Context) ([]book.Detail, error) {
	available := make([]book.Detail, 0)
	for _, d := range r.books {
		if d.Availability && d.Stock > 0 {
			available = append(available, *d)
		}
	}
	return available, nil
}

func (r *fakeBookRepo) GetByImageName(_ context.Context, name string) (*book.Detail, error) {
	for _, d := range r.books {
		if d.ImageURL != nil && strings.HasSuffix(*d.ImageURL, name) {
			copied := *d
			return &copied, nil
		}
	}
	return nil, book.ErrNotFound
}

func (r *fakeBookRepo) SetImageURL(_ context.Context, id uuid.UUID, url string, _ uuid.UUID) error {
	d, ok := r.books[id]
	if !ok {
		return book.ErrNotFound
	}
	d.ImageURL = &url
	return nil
}

func (r *fakeBookRepo) SellStock(_ context.Context, id uuid.UUID, qty int, _ uuid.UUID) (*book.Detail, error) {
	d, ok := r.books[id]
	if !ok {
		return nil, book.ErrNotFound
	}
	if !d.Availability {
		return nil, book.ErrNotAvailable
	}
	if d.Stock < qty {
		return nil, &book.InsufficientStockError{Available: d.Stock, Requested: qty}
	}
	d.Stock -= qty
	copied := *d
	return &copied, nil
}

func (r *fakeBookRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int, _ uuid.UUID) (*book.Detail, error) {
	d, ok := r.books[id]
	if !ok {
		return nil, book.ErrNotFound
	}
	if d.Stock+delta < 0 {
		return nil, book.ErrStockInsufficient
	}
	d.Stock += delta
	copied := *d
	return &copied, nil
}

// fakeCatalogRepo serves author, editorial and genre lookups by id.
type fakeCatalogRepo struct {
	ids map[uuid.UUID]bool
}

func (r *fakeCatalogRepo) exists(id uuid.UUID) error {
	if r.ids[id] {
		return nil
	}
	return author.ErrNotFound
}

type fakeAuthorRepo struct{ fakeCatalogRepo }

func (r *fakeAuthorRepo) Create(context.Context, string) (*author.Author, error) { return nil, nil }
func (r *fakeAuthorRepo) GetAll(context.Context) ([]author.Author, error)        { return nil, nil }
func (r *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	if err := r.exists(id); err != nil {
		return nil, err
	}
	return &author.Author{ID: id, Name: "Frank Herbert"}, nil
}
func (r *fakeAuthorRepo) Update(context.Context, uuid.UUID, string) (*author.Author, error) {
	return nil, nil
}
func (r *fakeAuthorRepo) SoftDelete(context.Context, uuid.UUID) error { return nil }

type fakeEditorialRepo struct{ fakeCatalogRepo }

func (r *fakeEditorialRepo) Create(context.Context, string) (*editorial.Editorial, error) {
	return nil, nil
}
func (r *fakeEditorialRepo) GetAll(context.Context) ([]editorial.Editorial, error) { return nil, nil }
func (r *fakeEditorialRepo) GetByID(_ context.Context, id uuid.UUID) (*editorial.Editorial, error) {
	if err := r.exists(id); err != nil {
		return nil, err
	}
	return &editorial.Editorial{ID: id, Name: "Ace Books"}, nil
}
func (r *fakeEditorialRepo) Update(context.Context, uuid.UUID, string) (*editorial.Editorial, error) {
	return nil, nil
}
func (r *fakeEditorialRepo) SoftDelete(context.Context, uuid.UUID) error { return nil }

type fakeGenreRepo struct{ fakeCatalogRepo }

func (r *fakeGenreRepo) Create(context.Context, string) (*genre.Genre, error) { return nil, nil }
func (r *fakeGenreRepo) GetAll(context.Context) ([]genre.Genre, error)        { return nil, nil }
func (r *fakeGenreRepo) GetByID(_ context.Context, id uuid.UUID) (*genre.Genre, error) {
	if err := r.exists(id); err != nil {
		return nil, err
	}
	return &genre.Genre{ID: id, Name: "Ciencia ficción"}, nil
}
func (r *fakeGenreRepo) Update(context.Context, uuid.UUID, string) (*genre.Genre, error) {
	return nil, nil
}
func (r *fakeGenreRepo) SoftDelete(context.Context, uuid.UUID) error { return nil }

type fixture struct {
	repo        *fakeBookRepo
	svc         book.Service
	authorID    uuid.UUID
	editorialID uuid.UUID
	genreID     uuid.UUID
	actorID     uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:        newFakeBookRepo(),
		authorID:    uuid.New(),
		editorialID: uuid.New(),
		genreID:     uuid.New(),
		actorID:     uuid.New(),
	}
	f.svc = NewBookService(
		f.repo,
		&fakeAuthorRepo{fakeCatalogRepo{ids: map[uuid.UUID]bool{f.authorID: true}}},
		&fakeEditorialRepo{fakeCatalogRepo{ids: map[uuid.UUID]bool{f.editorialID: true}}},
		&fakeGenreRepo{fakeCatalogRepo{ids: map[uuid.UUID]bool{f.genreID: true}}},
	)
	return f
}

func (f *fixture) createBook(t *testing.T, title string, stock int) uuid.UUID {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), &book.CreateBookReq{
		Title:       title,
		Price:       decimal.NewFromFloat(25.50),
		Stock:       stock,
		PublishedAt: "1965-08-01",
		AuthorID:    f.authorID,
		EditorialID: f.editorialID,
		GenreID:     f.genreID,
	}, f.actorID)
	require.NoError(t, err)
	return resp.ID
}

func TestCreate_UnknownReferencesRejected(t *testing.T) {
	f := newFixture()
	missing := uuid.New()

	_, err := f.svc.Create(context.Background(), &book.CreateBookReq{
		Title:       "Dune",
		Price:       decimal.NewFromInt(20),
		Stock:       5,
		PublishedAt: "1965-08-01",
		AuthorID:    missing,
		EditorialID: f.editorialID,
		GenreID:     f.genreID,
	}, f.actorID)

	var refErr *book.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "Autor", refErr.Entity)
	assert.Contains(t, err.Error(), missing.String())
}

func TestSell_DecrementsStock(t *testing.T) {
	f := newFixture()
	id := f.createBook(t, "Dune", 5)

	resp, err := f.svc.Sell(context.Background(), id, 3, f.actorID)
	require.NoError(t, err)

	assert.Equal(t, "Venta procesada exitosamente", resp.Message)
	assert.Equal(t, 2, resp.Book.Stock)
	assert.Equal(t, 3, resp.SoldQuantity)
	assert.Equal(t, 2, resp.RemainingStock)
}

func TestSell_InsufficientStockMessage(t *testing.T) {
	f := newFixture()
	id := f.createBook(t, "Dune", 5)

	_, err := f.svc.Sell(context.Background(), id, 3, f.actorID)
	require.NoError(t, err)

	// Second sale of 3 only finds 2 left.
	_, err = f.svc.Sell(context.Background(), id, 3, f.actorID)
	require.Error(t, err)
	assert.Equal(t, "Stock insuficiente. Stock disponible: 2, solicitado: 3", err.Error())

	// The failed sale persisted nothing.
	detail, getErr := f.repo.GetByID(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, 2, detail.Stock)
}

func TestSell_InvalidQuantity(t *testing.T) {
	f := newFixture()
	id := f.createBook(t, "Dune", 5)

	for _, qty := range []int{0, -1} {
		_, err := f.svc.Sell(context.Background(), id, qty, f.actorID)
		assert.ErrorIs(t, err, book.ErrInvalidQuantity)
	}
}

func TestSell_UnavailableBook(t *testing.T) {
	f := newFixture()
	id := f.createBook(t, "Dune", 5)
	f.repo.books[id].Availability = false

	_, err := f.svc.Sell(context.Background(), id, 1, f.actorID)
	assert.ErrorIs(t, err, book.ErrNotAvailable)
}

func TestSell_UnknownBook(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Sell(context.Background(), uuid.New(), 1, f.actorID)
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestUpdateStock_DeltaAndGuard(t *testing.T) {
	f := newFixture()
	id := f.createBook(t, "Dune", 5)
	ctx := context.Background()

	resp, err := f.svc.UpdateStock(ctx, id, -2, f.actorID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Stock)

	resp, err = f.svc.UpdateStock(ctx, id, 10, f.actorID)
	require.NoError(t, err)
	assert.Equal(t, 13, resp.Stock)

	_, err = f.svc.UpdateStock(ctx, id, -14, f.actorID)
	assert.ErrorIs(t, err, book.ErrStockInsufficient)
}

func TestFindAll_PaginationMeta(t *testing.T) {
	f := newFixture()
	for i := 0; i < 25; i++ {
		f.createBook(t, "Libro "+uuid.NewString(), 1)
	}

	resp, err := f.svc.FindAll(context.Background(), &book.Filter{Page: 2, Limit: 10})
	require.NoError(t, err)

	require.IsType(t, []book.BookResp{}, resp.Data)
	assert.Len(t, resp.Data, 10)
	assert.Equal(t, 25, resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
	assert.True(t, resp.Meta.HasPrev)
}

func TestUpdate_PartialMerge(t *testing.T) {
	f := newFixture()
	id := f.createBook(t, "Dune", 5)

	newTitle := "Dune Messiah"
	resp, err := f.svc.Update(context.Background(), id, &book.UpdateBookReq{Title: &newTitle}, f.actorID)
	require.NoError(t, err)

	assert.Equal(t, "Dune Messiah", resp.Title)
	assert.Equal(t, 5, resp.Stock)
	assert.Equal(t, f.authorID, resp.AuthorID)
}

func TestExportCSV_SpanishHeaders(t *testing.T) {
	f := newFixture()
	f.createBook(t, "Dune", 5)

	data, err := f.svc.ExportCSV(context.Background(), &book.Filter{})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "Título,Autor,Editorial,Género,Precio,Stock,Disponible,Publicado"))
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "25.50")
}
