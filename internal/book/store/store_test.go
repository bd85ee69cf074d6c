package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/book/store"
	"github.com/MrJamesThe3rd/libry/internal/database/dbtest"
)

func TestStore_CRUD(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	b := &book.Book{Title: "Dune", Authors: "Frank Herbert", ISBN: "0441013597", Pages: 604, Stock: 2}
	require.NoError(t, s.CreateBook(ctx, b))
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := s.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 2, got.Stock)
	assert.Nil(t, got.UpdatedAt)

	updated, err := s.UpdateBook(ctx, b.ID, book.UpdateParams{Stock: new(5)})
	require.NoError(t, err)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "Dune", updated.Title)

	again, err := s.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)

	require.NoError(t, s.DeleteBook(ctx, b.ID))

	_, err = s.GetBook(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBook(ctx, b.ID), book.ErrNotFound)

	_, err = s.UpdateBook(ctx, b.ID, book.UpdateParams{Title: new("Gone")})
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestStore_UpdateBook_KeepsStockMovedElsewhere(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	b := &book.Book{Title: "Dune", Authors: "Frank Herbert", Stock: 3}
	require.NoError(t, s.CreateBook(ctx, b))

	// Stock changes behind the caller's back, as an issue would.
	_, err := db.ExecContext(ctx, `UPDATE books SET stock = 2 WHERE id = $1`, b.ID)
	require.NoError(t, err)

	updated, err := s.UpdateBook(ctx, b.ID, book.UpdateParams{Title: new("Dune Messiah")})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 2, updated.Stock)
}

func TestStore_ListBooks_Search(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	for _, b := range []*book.Book{
		{Title: "Harry Potter and the Chamber of Secrets", Authors: "J.K. Rowling"},
		{Title: "The Hobbit", Authors: "J.R.R. Tolkien"},
		{Title: "100% Pure", Authors: "Anon"},
	} {
		require.NoError(t, s.CreateBook(ctx, b))
	}

	all, err := s.ListBooks(ctx, book.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byTitle, err := s.ListBooks(ctx, book.ListFilter{Query: "hobbit"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "The Hobbit", byTitle[0].Title)

	byAuthor, err := s.ListBooks(ctx, book.ListFilter{Query: "ROWLING"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	literal, err := s.ListBooks(ctx, book.ListFilter{Query: "100%"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100% Pure", literal[0].Title)

	percent, err := s.ListBooks(ctx, book.ListFilter{Query: "%"})
	require.NoError(t, err)
	assert.Len(t, percent, 1)
}
