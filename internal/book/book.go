package book

import (
	"errors"
)

// ErrNotFound is returned when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// MaxFieldLength is the column width of title and author.
const MaxFieldLength = 100

// Book represents a book entity.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Input is the body of create and update requests. Both fields are required.
type Input struct {
	Title  string `json:"title" validate:"required,max=100"`
	Author string `json:"author" validate:"required,max=100"`
}
