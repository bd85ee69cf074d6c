package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

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

const selectTransactionColumns = `
	t.id, t.member_id, t.book_id, t.kind, t.issue_id, t.issued_at, t.returned_at, t.fee, t.created_at
`

// scanTransaction expects the column order of selectTransactionColumns.
func scanTransaction(s scanner) (*lending.Transaction, error) {
	var tx lending.Transaction

	var kind string

	if err := s.Scan(
		&tx.ID, &tx.MemberID, &tx.BookID, &kind, &tx.IssueID,
		&tx.IssuedAt, &tx.ReturnedAt, &tx.Fee, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = lending.Kind(kind)

	return &tx, nil
}

func scanTransactions(rows *sql.Rows) ([]*lending.Transaction, error) {
	defer rows.Close()

	var txs []*lending.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter lending.ListFilter) ([]*lending.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.MemberID != nil {
		query += fmt.Sprintf(" AND t.member_id = $%d", argIdx)

		args = append(args, *filter.MemberID)
		argIdx++
	}

	if filter.BookID != nil {
		query += fmt.Sprintf(" AND t.book_id = $%d", argIdx)

		args = append(args, *filter.BookID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND t.kind = $%d", argIdx)

		args = append(args, string(*filter.Kind))
		argIdx++
	}

	query += " ORDER BY t.created_at DESC, COALESCE(t.issued_at, t.returned_at) DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return scanTransactions(rows)
}

// openIssueCondition matches issue rows no return has referenced yet.
const openIssueCondition = `t.kind = 'issue' AND NOT EXISTS (
		SELECT 1 FROM transactions r WHERE r.kind = 'return' AND r.issue_id = t.id
	)`

func (s *Store) ListOpenIssues(ctx context.Context, memberID uuid.UUID) ([]*lending.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.member_id = $1 AND ` + openIssueCondition + `
		ORDER BY t.issued_at DESC`

	rows, err := s.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing open issues: %w", err)
	}

	return scanTransactions(rows)
}

type lendingTx struct {
	tx *sql.Tx
}

func (s *Store) BeginLending(ctx context.Context) (lending.LendingTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning lending tx: %w", err)
	}

	return &lendingTx{tx: dbTx}, nil
}

func (ltx *lendingTx) Commit() error   { return ltx.tx.Commit() }
func (ltx *lendingTx) Rollback() error { return ltx.tx.Rollback() }

func (ltx *lendingTx) LockMember(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	query := `
		SELECT id, name, email, phone, outstanding_debt, created_at, updated_at
		FROM members
		WHERE id = $1
		FOR UPDATE
	`

	var m member.Member
	err := ltx.tx.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.OutstandingDebt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrNotFound
		}

		return nil, fmt.Errorf("locking member: %w", err)
	}

	return &m, nil
}

func (ltx *lendingTx) LockBook(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := `
		SELECT id, title, authors, isbn, publisher, num_pages, stock, created_at, updated_at
		FROM books
		WHERE id = $1
		FOR UPDATE
	`

	var b book.Book
	err := ltx.tx.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Authors, &b.ISBN, &b.Publisher, &b.Pages, &b.Stock, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, book.ErrNotFound
		}

		return nil, fmt.Errorf("locking book: %w", err)
	}

	return &b, nil
}

func (ltx *lendingTx) LatestOpenIssue(ctx context.Context, memberID, bookID uuid.UUID) (*lending.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.member_id = $1 AND t.book_id = $2 AND ` + openIssueCondition + `
		ORDER BY t.issued_at DESC
		LIMIT 1`

	tx, err := scanTransaction(ltx.tx.QueryRowContext(ctx, query, memberID, bookID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lending.ErrNoOpenIssue
		}

		return nil, fmt.Errorf("finding open issue: %w", err)
	}

	return tx, nil
}

func (ltx *lendingTx) SetBookStock(ctx context.Context, bookID uuid.UUID, stock int) error {
	query := `
		UPDATE books
		SET stock = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := ltx.tx.ExecContext(ctx, query, stock, bookID); err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}

	return nil
}

func (ltx *lendingTx) AddMemberDebt(ctx context.Context, memberID uuid.UUID, amount float64) error {
	query := `
		UPDATE members
		SET outstanding_debt = outstanding_debt + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := ltx.tx.ExecContext(ctx, query, amount, memberID); err != nil {
		return fmt.Errorf("adding debt: %w", err)
	}

	return nil
}

func (ltx *lendingTx) AppendTransaction(ctx context.Context, tx *lending.Transaction) error {
	query := `
		INSERT INTO transactions (member_id, book_id, kind, issue_id, issued_at, returned_at, fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := ltx.tx.QueryRowContext(ctx, query,
		tx.MemberID,
		tx.BookID,
		string(tx.Kind),
		tx.IssueID,
		tx.IssuedAt,
		tx.ReturnedAt,
		tx.Fee,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}

	return nil
}
