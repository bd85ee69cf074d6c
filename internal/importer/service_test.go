package importer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/importer"
)

func page(n, offset int) []importer.Item {
	items := make([]importer.Item, n)
	for i := range items {
		items[i] = importer.Item{Title: fmt.Sprintf("Book %d", offset+i), Authors: "Author", Pages: 100}
	}

	return items
}

// pagedSource serves total items in pages of size, then empty pages.
func pagedSource(src *importer.MockSource, size, total int) *int {
	requests := 0

	src.EXPECT().FetchPage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p int, _ importer.Filter) ([]importer.Item, error) {
			requests++

			start := (p - 1) * size
			if start >= total {
				return nil, nil
			}

			return page(min(size, total-start), start), nil
		}).AnyTimes()

	return &requests
}

func acceptAll(books *importer.MockBookCreator, created *[]book.CreateParams) {
	books.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p book.CreateParams) (*book.Book, error) {
			*created = append(*created, p)
			return &book.Book{ID: uuid.New(), Title: p.Title, Stock: p.Stock}, nil
		}).AnyTimes()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Import(t *testing.T) {
	type testCase struct {
		name         string
		count        int
		pageSize     int
		available    int
		wantImported int
		wantRequests int
	}

	tests := []testCase{
		{name: "StopsAtCount", count: 25, pageSize: 10, available: 100, wantImported: 25, wantRequests: 3},
		{name: "ExactPageBoundary", count: 20, pageSize: 10, available: 100, wantImported: 20, wantRequests: 2},
		{name: "CatalogExhausted", count: 50, pageSize: 10, available: 12, wantImported: 12, wantRequests: 3},
		{name: "EmptyCatalog", count: 5, pageSize: 10, available: 0, wantImported: 0, wantRequests: 1},
		{name: "ZeroCount", count: 0, pageSize: 10, available: 100, wantImported: 0, wantRequests: 0},
		{name: "NegativeCount", count: -3, pageSize: 10, available: 100, wantImported: 0, wantRequests: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			src := importer.NewMockSource(ctrl)
			books := importer.NewMockBookCreator(ctrl)

			requests := pagedSource(src, tt.pageSize, tt.available)

			var created []book.CreateParams
			acceptAll(books, &created)

			svc := importer.NewService(src, books, importer.WithLogger(quietLogger()))

			n, err := svc.Import(context.Background(), tt.count, importer.Filter{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantImported, n)
			assert.Len(t, created, tt.wantImported)
			assert.Equal(t, tt.wantRequests, *requests)

			for _, p := range created {
				assert.Equal(t, 1, p.Stock)
			}
		})
	}
}

func TestService_Import_PassesFilterOnEveryPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := importer.NewMockSource(ctrl)
	books := importer.NewMockBookCreator(ctrl)

	filter := importer.Filter{Title: "potter", Authors: "rowling"}

	gomock.InOrder(
		src.EXPECT().FetchPage(gomock.Any(), 1, filter).Return(page(2, 0), nil),
		src.EXPECT().FetchPage(gomock.Any(), 2, filter).Return(page(2, 2), nil),
		src.EXPECT().FetchPage(gomock.Any(), 3, filter).Return(nil, nil),
	)

	var created []book.CreateParams
	acceptAll(books, &created)

	n, err := importer.NewService(src, books, importer.WithLogger(quietLogger())).
		Import(context.Background(), 10, filter)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestService_Import_SourceFailureKeepsProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := importer.NewMockSource(ctrl)
	books := importer.NewMockBookCreator(ctrl)

	gomock.InOrder(
		src.EXPECT().FetchPage(gomock.Any(), 1, gomock.Any()).Return(page(10, 0), nil),
		src.EXPECT().FetchPage(gomock.Any(), 2, gomock.Any()).
			Return(nil, fmt.Errorf("%w: status 503", importer.ErrExternalSource)),
	)

	var created []book.CreateParams
	acceptAll(books, &created)

	n, err := importer.NewService(src, books, importer.WithLogger(quietLogger())).
		Import(context.Background(), 25, importer.Filter{})
	assert.ErrorIs(t, err, importer.ErrExternalSource)
	assert.Equal(t, 10, n)
	assert.Len(t, created, 10)
}

func TestService_Import_StoreFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := importer.NewMockSource(ctrl)
	books := importer.NewMockBookCreator(ctrl)

	src.EXPECT().FetchPage(gomock.Any(), 1, gomock.Any()).Return(page(5, 0), nil)

	gomock.InOrder(
		books.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&book.Book{}, nil).Times(2),
		books.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down")),
	)

	n, err := importer.NewService(src, books, importer.WithLogger(quietLogger())).
		Import(context.Background(), 5, importer.Filter{})
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 2, n)
}

func TestService_ImportItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	books := importer.NewMockBookCreator(ctrl)

	var created []book.CreateParams
	acceptAll(books, &created)

	items := []importer.Item{
		{Title: "Dune", Authors: "Frank Herbert", Stock: new(4)},
		{Title: ""},
		{Title: "Emma", Pages: -1},
	}

	n, err := importer.NewService(nil, books, importer.WithLogger(quietLogger())).
		ImportItems(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, created, 2)

	assert.Equal(t, 4, created[0].Stock)
	assert.Equal(t, 1, created[1].Stock)
	assert.Equal(t, 0, created[1].Pages)
}

func TestService_Import_SkipsUntitledEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := importer.NewMockSource(ctrl)
	books := importer.NewMockBookCreator(ctrl)

	gomock.InOrder(
		src.EXPECT().FetchPage(gomock.Any(), 1, gomock.Any()).Return([]importer.Item{
			{Title: "Dune"},
			{Title: "   ", ISBN: "123"},
			{Title: ""},
			{Title: "Emma"},
		}, nil),
		src.EXPECT().FetchPage(gomock.Any(), 2, gomock.Any()).Return([]importer.Item{{Title: "Ulysses"}}, nil),
	)

	var created []book.CreateParams
	acceptAll(books, &created)

	n, err := importer.NewService(src, books, importer.WithLogger(quietLogger())).
		Import(context.Background(), 3, importer.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, created, 3)
	assert.Equal(t, "Ulysses", created[2].Title)
}
