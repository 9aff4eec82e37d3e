package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DB for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// Query returns *sql.Rows, which already satisfies Rows.
func (s *SQLXAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLXAdapter) Close() {
	_ = s.db.Close()
}
