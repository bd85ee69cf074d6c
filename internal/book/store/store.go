package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/database"
)

const (
	tableBooks   = "books"
	colID        = "id"
	colTitle     = "title"
	colAuthors   = "authors"
	colISBN      = "isbn"
	colPublisher = "publisher"
	colPages     = "num_pages"
	colStock     = "stock"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

var dialect = goqu.Dialect("postgres")

// Store persists books. Queries are built with goqu and executed through database/sql.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func selectColumns() []any {
	return []any{colID, colTitle, colAuthors, colISBN, colPublisher, colPages, colStock, colCreatedAt, colUpdatedAt}
}

func scanBook(s scanner) (*book.Book, error) {
	var b book.Book
	if err := s.Scan(
		&b.ID, &b.Title, &b.Authors, &b.ISBN, &b.Publisher, &b.Pages, &b.Stock, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *Store) CreateBook(ctx context.Context, b *book.Book) error {
	query, args, err := dialect.Insert(tableBooks).Prepared(true).
		Rows(goqu.Record{
			colTitle:     b.Title,
			colAuthors:   b.Authors,
			colISBN:      b.ISBN,
			colPublisher: b.Publisher,
			colPages:     b.Pages,
			colStock:     b.Stock,
		}).
		Returning(colID, colCreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("creating book: %w", err)
	}

	return nil
}

func (s *Store) GetBook(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query, args, err := dialect.From(tableBooks).Prepared(true).
		Select(selectColumns()...).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	b, err := scanBook(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, book.ErrNotFound
		}

		return nil, fmt.Errorf("getting book: %w", err)
	}

	return b, nil
}

// updateQuery sets only the columns present in params. Lending moves stock too, so stock
// is written only when the caller asks for it.
func updateQuery(id uuid.UUID, params book.UpdateParams) (string, []any, error) {
	record := goqu.Record{colUpdatedAt: goqu.L("NOW()")}

	if params.Title != nil {
		record[colTitle] = *params.Title
	}

	if params.Authors != nil {
		record[colAuthors] = *params.Authors
	}

	if params.ISBN != nil {
		record[colISBN] = *params.ISBN
	}

	if params.Publisher != nil {
		record[colPublisher] = *params.Publisher
	}

	if params.Pages != nil {
		record[colPages] = *params.Pages
	}

	if params.Stock != nil {
		record[colStock] = *params.Stock
	}

	return dialect.Update(tableBooks).Prepared(true).
		Set(record).
		Where(goqu.C(colID).Eq(id.String())).
		Returning(selectColumns()...).
		ToSQL()
}

func (s *Store) UpdateBook(ctx context.Context, id uuid.UUID, params book.UpdateParams) (*book.Book, error) {
	query, args, err := updateQuery(id, params)
	if err != nil {
		return nil, fmt.Errorf("building update: %w", err)
	}

	b, err := scanBook(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, book.ErrNotFound
		}

		return nil, fmt.Errorf("updating book: %w", err)
	}

	return b, nil
}

func (s *Store) DeleteBook(ctx context.Context, id uuid.UUID) error {
	query, args, err := dialect.Delete(tableBooks).Prepared(true).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return book.ErrInUse
		}

		return fmt.Errorf("deleting book: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	if n == 0 {
		return book.ErrNotFound
	}

	return nil
}

func (s *Store) ListBooks(ctx context.Context, filter book.ListFilter) ([]*book.Book, error) {
	query, args, err := listQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var books []*book.Book

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}

		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

func listQuery(filter book.ListFilter) (string, []any, error) {
	ds := dialect.From(tableBooks).Prepared(true).
		Select(selectColumns()...).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colTitle).Asc())

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		ds = ds.Where(goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colAuthors).ILike(pattern),
		))
	}

	return ds.ToSQL()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards so user input only ever matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
