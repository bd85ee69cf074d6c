package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/libry/internal/book"
)

const defaultStock = 1

type Service struct {
	source Source
	books  BookCreator
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(source Source, books BookCreator, opts ...Option) *Service {
	s := &Service{
		source: source,
		books:  books,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Import walks the remote catalog page by page and stores up to count books with one copy each.
// It stops requesting pages once count is reached or a page comes back empty. Books stored
// before a failure are kept and counted in the returned total. Entries without a title are
// skipped and do not count.
func (s *Service) Import(ctx context.Context, count int, filter Filter) (int, error) {
	imported := 0

	for page := 1; imported < count; page++ {
		items, err := s.source.FetchPage(ctx, page, filter)
		if err != nil {
			s.logger.Error("catalog page fetch failed", "page", page, "imported", imported, "error", err)
			return imported, fmt.Errorf("fetching page %d: %w", page, err)
		}

		if len(items) == 0 {
			s.logger.Info("catalog exhausted", "page", page, "imported", imported)
			break
		}

		for _, item := range items {
			if imported >= count {
				break
			}

			if untitled(item) {
				s.logger.Debug("skipping untitled catalog entry", "page", page, "isbn", item.ISBN)
				continue
			}

			if err := s.store(ctx, item, defaultStock); err != nil {
				return imported, err
			}

			imported++
		}

		s.logger.Debug("catalog page imported", "page", page, "items", len(items), "imported", imported)
	}

	s.logger.Info("catalog import finished", "requested", count, "imported", imported)

	return imported, nil
}

// ImportItems stores already parsed items, for example rows of an uploaded file.
// Rows without a title are skipped. Items without a stock get a single copy.
func (s *Service) ImportItems(ctx context.Context, items []Item) (int, error) {
	imported := 0

	for _, item := range items {
		if untitled(item) {
			continue
		}

		stock := defaultStock
		if item.Stock != nil {
			stock = *item.Stock
		}

		if err := s.store(ctx, item, stock); err != nil {
			return imported, err
		}

		imported++
	}

	s.logger.Info("file import finished", "rows", len(items), "imported", imported)

	return imported, nil
}

func untitled(item Item) bool {
	return strings.TrimSpace(item.Title) == ""
}

func (s *Service) store(ctx context.Context, item Item, stock int) error {
	_, err := s.books.Create(ctx, book.CreateParams{
		Title:     item.Title,
		Authors:   item.Authors,
		ISBN:      item.ISBN,
		Publisher: item.Publisher,
		Pages:     max(item.Pages, 0),
		Stock:     stock,
	})
	if err != nil {
		return fmt.Errorf("storing %q: %w", item.Title, err)
	}

	return nil
}
