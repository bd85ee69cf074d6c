package member

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("member not found")
	ErrInvalid  = errors.New("invalid member")
	// ErrInUse is returned when deleting a member that lending transactions still reference.
	ErrInUse = errors.New("member has lending history")
)

// Member is a registered borrower. OutstandingDebt accumulates unpaid late fees.
type Member struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Phone           string
	OutstandingDebt float64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
