package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookcrud/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB records the last statement and answers it with canned rows.
type fakeDB struct {
	query       string
	args        []any
	hasDeadline bool

	rows     []Book
	queryErr error
	rowsErr  error
	closed   bool
}

func (f *fakeDB) Query(ctx context.Context, query string, args ...any) (store.Rows, error) {
	f.query = query
	f.args = args
	_, f.hasDeadline = ctx.Deadline()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{db: f, pos: -1}, nil
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close()                     {}

type fakeRows struct {
	db  *fakeDB
	pos int
}

func (r *fakeRows) Next() bool {
	if r.db.rowsErr != nil {
		return false
	}
	r.pos++
	return r.pos < len(r.db.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	b := r.db.rows[r.pos]
	*dest[0].(*int64) = b.ID
	*dest[1].(*string) = b.Title
	*dest[2].(*string) = b.Author
	return nil
}

func (r *fakeRows) Err() error { return r.db.rowsErr }

func (r *fakeRows) Close() error {
	r.db.closed = true
	return nil
}

func TestPostgresRepo_Create(t *testing.T) {
	db := &fakeDB{rows: []Book{testBook}}
	repo := NewPostgresRepo(db, time.Second)

	b, err := repo.Create(context.Background(), "Dune", "Frank Herbert")
	require.NoError(t, err)

	assert.Equal(t, testBook, b)
	assert.Contains(t, db.query, `INSERT INTO "books"`)
	assert.Contains(t, db.query, `RETURNING "id", "title", "author"`)
	assert.ElementsMatch(t, []any{"Dune", "Frank Herbert"}, db.args)
	assert.True(t, db.hasDeadline)
	assert.True(t, db.closed)
}

func TestPostgresRepo_Create_Error(t *testing.T) {
	db := &fakeDB{rowsErr: errors.New("value too long for type character varying(100)")}
	repo := NewPostgresRepo(db, time.Second)

	_, err := repo.Create(context.Background(), "Dune", "Frank Herbert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert book: value too long")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestPostgresRepo_List(t *testing.T) {
	t.Run("ordered by id", func(t *testing.T) {
		db := &fakeDB{rows: []Book{testBook, {ID: 2, Title: "Emma", Author: "Jane Austen"}}}
		repo := NewPostgresRepo(db, 0)

		books, err := repo.List(context.Background())
		require.NoError(t, err)

		assert.Len(t, books, 2)
		assert.Contains(t, db.query, `ORDER BY "id" ASC`)
		assert.False(t, db.hasDeadline)
	})

	t.Run("empty table", func(t *testing.T) {
		repo := NewPostgresRepo(&fakeDB{}, time.Second)

		books, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		repo := NewPostgresRepo(&fakeDB{queryErr: cause}, time.Second)

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "list books")
	})
}

func TestPostgresRepo_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := &fakeDB{rows: []Book{testBook}}
		repo := NewPostgresRepo(db, time.Second)

		b, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, testBook, b)
		assert.Contains(t, db.query, `WHERE ("id" = $1)`)
		assert.Contains(t, db.args, int64(1))
	})

	t.Run("missing", func(t *testing.T) {
		repo := NewPostgresRepo(&fakeDB{}, time.Second)

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rows error is not a miss", func(t *testing.T) {
		cause := context.DeadlineExceeded
		repo := NewPostgresRepo(&fakeDB{rowsErr: cause}, time.Second)

		_, err := repo.GetByID(context.Background(), 1)
		assert.ErrorIs(t, err, cause)
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestPostgresRepo_Update(t *testing.T) {
	t.Run("returns the new row", func(t *testing.T) {
		updated := Book{ID: 1, Title: "Dune Messiah", Author: "Frank Herbert"}
		db := &fakeDB{rows: []Book{updated}}
		repo := NewPostgresRepo(db, time.Second)

		b, err := repo.Update(context.Background(), 1, "Dune Messiah", "Frank Herbert")
		require.NoError(t, err)
		assert.Equal(t, updated, b)
		assert.Contains(t, db.query, `UPDATE "books" SET`)
		assert.Contains(t, db.query, "RETURNING")
		assert.ElementsMatch(t, []any{"Dune Messiah", "Frank Herbert", int64(1)}, db.args)
	})

	t.Run("missing", func(t *testing.T) {
		repo := NewPostgresRepo(&fakeDB{}, time.Second)

		_, err := repo.Update(context.Background(), 7, "a", "b")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresRepo_Delete(t *testing.T) {
	t.Run("returns the removed row", func(t *testing.T) {
		db := &fakeDB{rows: []Book{testBook}}
		repo := NewPostgresRepo(db, time.Second)

		b, err := repo.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, testBook, b)
		assert.Contains(t, db.query, `DELETE FROM "books"`)
	})

	t.Run("missing", func(t *testing.T) {
		repo := NewPostgresRepo(&fakeDB{}, time.Second)

		_, err := repo.Delete(context.Background(), 7)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresRepo_Search(t *testing.T) {
	tests := []struct {
		name        string
		term        string
		wantPattern string
	}{
		{name: "plain", term: "dune", wantPattern: "%dune%"},
		{name: "percent is literal", term: "50%", wantPattern: `%50\%%`},
		{name: "underscore is literal", term: "a_b", wantPattern: `%a\_b%`},
		{name: "backslash is literal", term: `a\b`, wantPattern: `%a\\b%`},
		{name: "empty matches everything", term: "", wantPattern: "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{}
			repo := NewPostgresRepo(db, time.Second)

			books, err := repo.Search(context.Background(), tt.term)
			require.NoError(t, err)
			assert.NotNil(t, books)

			assert.Contains(t, db.query, `"title" ILIKE`)
			assert.Contains(t, db.query, `"author" ILIKE`)
			assert.Contains(t, db.query, " OR ")
			require.Len(t, db.args, 2)
			assert.Equal(t, tt.wantPattern, db.args[0])
			assert.Equal(t, tt.wantPattern, db.args[1])
		})
	}
}
