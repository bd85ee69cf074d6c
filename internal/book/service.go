package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=book
type Repository interface {
	CreateBook(ctx context.Context, b *Book) error
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	// UpdateBook writes only the non-nil fields of params and returns the stored row.
	UpdateBook(ctx context.Context, id uuid.UUID, params UpdateParams) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title     string
	Authors   string
	ISBN      string
	Publisher string
	Pages     int
	Stock     int
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Title     *string
	Authors   *string
	ISBN      *string
	Publisher *string
	Pages     *int
	Stock     *int
}

// ListFilter narrows a listing. Query matches title or authors, case-insensitively.
type ListFilter struct {
	Query string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Book, error) {
	b := &Book{
		Title:     strings.TrimSpace(params.Title),
		Authors:   strings.TrimSpace(params.Authors),
		ISBN:      strings.TrimSpace(params.ISBN),
		Publisher: strings.TrimSpace(params.Publisher),
		Pages:     params.Pages,
		Stock:     params.Stock,
	}
	if err := validate(b); err != nil {
		return nil, err
	}

	if err := s.repo.CreateBook(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Book, error) {
	params = params.trimmed()

	switch {
	case params.Title != nil && *params.Title == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	case params.Pages != nil && *params.Pages < 0:
		return nil, fmt.Errorf("%w: page count cannot be negative", ErrInvalid)
	case params.Stock != nil && *params.Stock < 0:
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalid)
	}

	if params.empty() {
		return s.repo.GetBook(ctx, id)
	}

	return s.repo.UpdateBook(ctx, id, params)
}

func (p UpdateParams) trimmed() UpdateParams {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}

		return new(strings.TrimSpace(*v))
	}

	p.Title = trim(p.Title)
	p.Authors = trim(p.Authors)
	p.ISBN = trim(p.ISBN)
	p.Publisher = trim(p.Publisher)

	return p
}

func (p UpdateParams) empty() bool {
	return p == UpdateParams{}
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Book, error) {
	return s.repo.ListBooks(ctx, filter)
}

func validate(b *Book) error {
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	case b.Pages < 0:
		return fmt.Errorf("%w: page count cannot be negative", ErrInvalid)
	case b.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalid)
	}

	return nil
}
