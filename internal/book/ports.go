package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, title, author string) (Book, error)
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, title, author string) (Book, error)
	// Delete removes the row and returns it as it was.
	Delete(ctx context.Context, id int64) (Book, error)
	// Search matches term as a case-insensitive substring of title or author.
	// An empty term matches every book.
	Search(ctx context.Context, term string) ([]Book, error)
}
