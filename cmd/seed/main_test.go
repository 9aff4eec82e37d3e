package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookcrud/internal/book"
	"bookcrud/internal/platform/logging"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCreator struct {
	books  []book.Book
	failAt int
}

func (c *recordingCreator) Create(_ context.Context, title, author string) (book.Book, error) {
	if c.failAt > 0 && len(c.books)+1 == c.failAt {
		return book.Book{}, errors.New("connection reset")
	}
	b := book.Book{ID: int64(len(c.books) + 1), Title: title, Author: author}
	c.books = append(c.books, b)
	return b, nil
}

func TestInsertFakeBooks(t *testing.T) {
	creator := &recordingCreator{}

	n, err := insertFakeBooks(context.Background(), creator, gofakeit.New(42), 25, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 25, n)
	require.Len(t, creator.books, 25)
	for _, b := range creator.books {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Author)
	}
}

func TestInsertFakeBooks_SameSeedSameBooks(t *testing.T) {
	a, b := &recordingCreator{}, &recordingCreator{}

	_, err := insertFakeBooks(context.Background(), a, gofakeit.New(7), 5, logging.Discard())
	require.NoError(t, err)
	_, err = insertFakeBooks(context.Background(), b, gofakeit.New(7), 5, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, a.books, b.books)
}

func TestInsertFakeBooks_StopsOnError(t *testing.T) {
	creator := &recordingCreator{failAt: 3}

	n, err := insertFakeBooks(context.Background(), creator, gofakeit.New(1), 10, logging.Discard())

	require.Error(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, err.Error(), "insert book 3")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Dune", truncate("Dune"))
	assert.Len(t, []rune(truncate(strings.Repeat("é", 150))), book.MaxFieldLength)
}
