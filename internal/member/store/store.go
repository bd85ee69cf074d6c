package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/libry/internal/database"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, database.DriverName)}
}

type memberRow struct {
	ID              uuid.UUID  `db:"id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	Phone           string     `db:"phone"`
	OutstandingDebt float64    `db:"outstanding_debt"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

func (r memberRow) toMember() *member.Member {
	return &member.Member{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		OutstandingDebt: r.OutstandingDebt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

const memberColumns = `id, name, email, phone, outstanding_debt, created_at, updated_at`

func (s *Store) CreateMember(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (name, email, phone, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING ` + memberColumns

	var row memberRow
	if err := s.db.GetContext(ctx, &row, query, m.Name, m.Email, m.Phone); err != nil {
		return fmt.Errorf("creating member: %w", err)
	}

	*m = *row.toMember()

	return nil
}

func (s *Store) GetMember(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var row memberRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrNotFound
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return row.toMember(), nil
}

func (s *Store) UpdateMember(ctx context.Context, m *member.Member) error {
	query := `
		UPDATE members
		SET name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + memberColumns

	var row memberRow
	if err := s.db.GetContext(ctx, &row, query, m.Name, m.Email, m.Phone, m.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.ErrNotFound
		}

		return fmt.Errorf("updating member: %w", err)
	}

	*m = *row.toMember()

	return nil
}

func (s *Store) DeleteMember(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return member.ErrInUse
		}

		return fmt.Errorf("deleting member: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	if n == 0 {
		return member.ErrNotFound
	}

	return nil
}

func (s *Store) ListMembers(ctx context.Context) ([]*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY created_at ASC, name ASC`

	var rows []memberRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	members := make([]*member.Member, len(rows))
	for i, r := range rows {
		members[i] = r.toMember()
	}

	return members, nil
}

// SettleDebt subtracts a payment in a single statement so concurrent fee postings are not lost.
func (s *Store) SettleDebt(ctx context.Context, id uuid.UUID, amount float64) (*member.Member, error) {
	query := `
		UPDATE members
		SET outstanding_debt = GREATEST(outstanding_debt - $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING ` + memberColumns

	var row memberRow
	if err := s.db.GetContext(ctx, &row, query, amount, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrNotFound
		}

		return nil, fmt.Errorf("settling debt: %w", err)
	}

	return row.toMember(), nil
}
