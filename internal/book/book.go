package book

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrInvalid  = errors.New("invalid book")
	// ErrInUse is returned when deleting a book that lending transactions still reference.
	ErrInUse = errors.New("book has lending history")
)

// Book is a catalog entry. Stock counts the copies currently on the shelf.
type Book struct {
	ID        uuid.UUID
	Title     string
	Authors   string
	ISBN      string
	Publisher string
	Pages     int
	Stock     int
	CreatedAt time.Time
	UpdatedAt *time.Time
}
