package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=lending
type Repository interface {
	BeginLending(ctx context.Context) (LendingTx, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	ListOpenIssues(ctx context.Context, memberID uuid.UUID) ([]*Transaction, error)
}

// LendingTx is a store transaction holding row locks on the member and book it touched.
// Lock the member before the book so concurrent issues and returns cannot deadlock.
type LendingTx interface {
	LockMember(ctx context.Context, id uuid.UUID) (*member.Member, error)
	LockBook(ctx context.Context, id uuid.UUID) (*book.Book, error)
	LatestOpenIssue(ctx context.Context, memberID, bookID uuid.UUID) (*Transaction, error)
	SetBookStock(ctx context.Context, bookID uuid.UUID, stock int) error
	AddMemberDebt(ctx context.Context, memberID uuid.UUID, amount float64) error
	AppendTransaction(ctx context.Context, tx *Transaction) error
	Commit() error
	Rollback() error
}

type ListFilter struct {
	MemberID *uuid.UUID
	BookID   *uuid.UUID
	Kind     *Kind
}

type Service struct {
	repo   Repository
	policy Policy
	now    func() time.Time
}

type Option func(*Service)

func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithClock replaces time.Now, mainly so tests can pin issue and return times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		policy: DefaultPolicy(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Policy() Policy {
	return s.policy
}

// Issue lends one copy of a book to a member.
// It fails with ErrDebtLimitExceeded or ErrOutOfStock, checked in that order, without changing anything.
func (s *Service) Issue(ctx context.Context, memberID, bookID uuid.UUID) (*Transaction, error) {
	ltx, err := s.repo.BeginLending(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin lending: %w", err)
	}
	defer ltx.Rollback()

	m, err := ltx.LockMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	b, err := ltx.LockBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanBorrow(m.OutstandingDebt) {
		return nil, fmt.Errorf("%w: owes %.2f, limit %.2f", ErrDebtLimitExceeded, m.OutstandingDebt, s.policy.DebtLimit)
	}

	if b.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	if err := ltx.SetBookStock(ctx, b.ID, b.Stock-1); err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	now := s.now().UTC()
	tx := &Transaction{
		MemberID: m.ID,
		BookID:   b.ID,
		Kind:     KindIssue,
		IssuedAt: &now,
	}
	if err := ltx.AppendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("append issue: %w", err)
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("commit issue: %w", err)
	}

	return tx, nil
}

// Return closes the member's most recent open issue of the book, charging a late fee
// once the grace period has passed.
func (s *Service) Return(ctx context.Context, memberID, bookID uuid.UUID) (*Receipt, error) {
	ltx, err := s.repo.BeginLending(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin lending: %w", err)
	}
	defer ltx.Rollback()

	m, err := ltx.LockMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	b, err := ltx.LockBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	issue, err := ltx.LatestOpenIssue(ctx, m.ID, b.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	days, lateDays, fee := s.policy.Fee(*issue.IssuedAt, now)

	ret := &Transaction{
		MemberID:   m.ID,
		BookID:     b.ID,
		Kind:       KindReturn,
		IssueID:    &issue.ID,
		ReturnedAt: &now,
		Fee:        fee,
	}
	if err := ltx.AppendTransaction(ctx, ret); err != nil {
		return nil, fmt.Errorf("append return: %w", err)
	}

	if err := ltx.SetBookStock(ctx, b.ID, b.Stock+1); err != nil {
		return nil, fmt.Errorf("increment stock: %w", err)
	}

	if fee > 0 {
		if err := ltx.AddMemberDebt(ctx, m.ID, fee); err != nil {
			return nil, fmt.Errorf("post fee: %w", err)
		}
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("commit return: %w", err)
	}

	return &Receipt{
		Issue:    issue,
		Return:   ret,
		Days:     days,
		LateDays: lateDays,
		Fee:      fee,
		Debt:     m.OutstandingDebt + fee,
	}, nil
}

// History lists log entries matching filter, newest first.
func (s *Service) History(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// OpenLoans lists the member's issues that have not been returned yet, newest first.
func (s *Service) OpenLoans(ctx context.Context, memberID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListOpenIssues(ctx, memberID)
}
