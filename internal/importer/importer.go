package importer

import (
	"context"
	"errors"

	"github.com/MrJamesThe3rd/libry/internal/book"
)

// ErrExternalSource marks failures of the remote catalog: transport errors, non-2xx replies
// and bodies that cannot be decoded.
var ErrExternalSource = errors.New("external catalog source failed")

// Item is one book as described by an import source.
type Item struct {
	Title     string
	Authors   string
	ISBN      string
	Publisher string
	Pages     int
	// Stock is only set by sources that carry it. Imported books default to a single copy.
	Stock *int
}

// Filter narrows the remote catalog. Empty fields are not sent.
type Filter struct {
	Title   string
	Authors string
}

//go:generate mockgen -source=importer.go -destination=importer_mock.go -package=importer

// Source serves the remote catalog one page at a time. Pages start at 1 and an empty page
// means the catalog is exhausted.
type Source interface {
	FetchPage(ctx context.Context, page int, filter Filter) ([]Item, error)
}

// BookCreator persists a single book. *book.Service satisfies it.
type BookCreator interface {
	Create(ctx context.Context, params book.CreateParams) (*book.Book, error)
}
