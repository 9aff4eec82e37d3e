package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookcrud/internal/store"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

const (
	tableBooks = "books"
	colID      = "id"
	colTitle   = "title"
	colAuthor  = "author"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepo struct {
	db      store.DB
	timeout time.Duration
	dialect goqu.DialectWrapper
}

func NewPostgresRepo(db store.DB, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, dialect: goqu.Dialect("postgres")}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, title, author string) (Book, error) {
	query, args, err := r.dialect.Insert(tableBooks).Prepared(true).
		Rows(goqu.Record{colTitle: title, colAuthor: author}).
		Returning(colID, colTitle, colAuthor).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build insert: %w", err)
	}

	b, err := r.queryOne(ctx, query, args)
	if err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	query, args, err := r.selectBooks().Order(goqu.C(colID).Asc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	books, err := r.queryMany(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query, args, err := r.selectBooks().Where(goqu.C(colID).Eq(id)).ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build select: %w", err)
	}
	return r.queryOne(ctx, query, args)
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, title, author string) (Book, error) {
	query, args, err := r.dialect.Update(tableBooks).Prepared(true).
		Set(goqu.Record{colTitle: title, colAuthor: author}).
		Where(goqu.C(colID).Eq(id)).
		Returning(colID, colTitle, colAuthor).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build update: %w", err)
	}
	return r.queryOne(ctx, query, args)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (Book, error) {
	query, args, err := r.dialect.Delete(tableBooks).Prepared(true).
		Where(goqu.C(colID).Eq(id)).
		Returning(colID, colTitle, colAuthor).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build delete: %w", err)
	}
	return r.queryOne(ctx, query, args)
}

func (r *PostgresRepo) Search(ctx context.Context, term string) ([]Book, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	query, args, err := r.selectBooks().
		Where(goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colAuthor).ILike(pattern),
		)).
		Order(goqu.C(colID).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	books, err := r.queryMany(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) selectBooks() *goqu.SelectDataset {
	return r.dialect.From(tableBooks).Prepared(true).Select(colID, colTitle, colAuthor)
}

// queryOne runs a statement expected to yield at most one row. No row means ErrNotFound.
func (r *PostgresRepo) queryOne(ctx context.Context, query string, args []any) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return Book{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Book{}, err
		}
		return Book{}, ErrNotFound
	}

	var b Book
	if err := rows.Scan(&b.ID, &b.Title, &b.Author); err != nil {
		return Book{}, err
	}
	return b, rows.Err()
}

func (r *PostgresRepo) queryMany(ctx context.Context, query string, args []any) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Book, 0)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
