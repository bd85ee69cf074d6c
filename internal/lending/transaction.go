package lending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDebtLimitExceeded = errors.New("member debt exceeds lending limit")
	ErrOutOfStock        = errors.New("book out of stock")
	ErrNoOpenIssue       = errors.New("no open issue for this member and book")
)

// Kind distinguishes the two events of the transaction log.
type Kind string

const (
	KindIssue  Kind = "issue"
	KindReturn Kind = "return"
)

// Transaction is an append-only lending event. A return carries the ID of the issue it closes.
type Transaction struct {
	ID         uuid.UUID
	MemberID   uuid.UUID
	BookID     uuid.UUID
	Kind       Kind
	IssueID    *uuid.UUID
	IssuedAt   *time.Time
	ReturnedAt *time.Time
	Fee        float64
	CreatedAt  time.Time
}

// Receipt summarises a completed return.
type Receipt struct {
	Issue  *Transaction
	Return *Transaction
	// Days is the number of whole days the book was out.
	Days     int
	LateDays int
	Fee      float64
	// Debt is the member's outstanding debt after the fee was posted.
	Debt float64
}
