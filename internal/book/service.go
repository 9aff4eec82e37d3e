package book

import (
	"context"
	"log/slog"
)

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new book service. A nil logger means slog.Default().
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create stores a new book and returns it with its generated id.
func (s *Service) Create(ctx context.Context, title, author string) (Book, error) {
	b, err := s.repo.Create(ctx, title, author)
	if err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book created", bookAttrs(b)...)
	return b, nil
}

// List returns every book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites title and author of an existing book.
func (s *Service) Update(ctx context.Context, id int64, title, author string) (Book, error) {
	b, err := s.repo.Update(ctx, id, title, author)
	if err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book updated", bookAttrs(b)...)
	return b, nil
}

// Delete removes a book permanently. A nil error means the book existed and is gone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "book deleted", bookAttrs(b)...)
	return nil
}

// Search returns books whose title or author contains term. Callers reject empty terms.
func (s *Service) Search(ctx context.Context, term string) ([]Book, error) {
	return s.repo.Search(ctx, term)
}

func bookAttrs(b Book) []any {
	return []any{"id", b.ID, "title", b.Title, "author", b.Author}
}
