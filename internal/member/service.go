package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=member
type Repository interface {
	CreateMember(ctx context.Context, m *Member) error
	GetMember(ctx context.Context, id uuid.UUID) (*Member, error)
	UpdateMember(ctx context.Context, m *Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context) ([]*Member, error)
	SettleDebt(ctx context.Context, id uuid.UUID, amount float64) (*Member, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Email string
	Phone string
}

// UpdateParams carries a partial update of contact details. Debt is not editable here.
type UpdateParams struct {
	Name  *string
	Email *string
	Phone *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Member, error) {
	m := &Member{
		Name:  strings.TrimSpace(params.Name),
		Email: strings.TrimSpace(params.Email),
		Phone: strings.TrimSpace(params.Phone),
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if err := s.repo.CreateMember(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Member, error) {
	m, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		m.Name = strings.TrimSpace(*params.Name)
	}

	if params.Email != nil {
		m.Email = strings.TrimSpace(*params.Email)
	}

	if params.Phone != nil {
		m.Phone = strings.TrimSpace(*params.Phone)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if err := s.repo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMember(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Member, error) {
	return s.repo.ListMembers(ctx)
}

// SettleDebt records a payment against the member's outstanding debt.
// The balance never drops below zero; overpayment is not carried as credit.
func (s *Service) SettleDebt(ctx context.Context, id uuid.UUID, amount float64) (*Member, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment must be positive", ErrInvalid)
	}

	return s.repo.SettleDebt(ctx, id, amount)
}
