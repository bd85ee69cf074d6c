package lending

import "time"

const day = 24 * time.Hour

// Policy holds the lending rules: a grace period, a per-day late fee and the debt above
// which a member may not borrow.
type Policy struct {
	FreeDays  int
	FeePerDay float64
	DebtLimit float64
}

func DefaultPolicy() Policy {
	return Policy{
		FreeDays:  14,
		FeePerDay: 2.0,
		DebtLimit: 500,
	}
}

// CanBorrow reports whether a member with the given debt may be issued a book.
// A debt equal to the limit is still allowed.
func (p Policy) CanBorrow(debt float64) bool {
	return debt <= p.DebtLimit
}

// Fee returns the whole days elapsed between issue and return, the days past the grace
// period, and the resulting fee. Partial days are truncated.
func (p Policy) Fee(issuedAt, returnedAt time.Time) (days, lateDays int, fee float64) {
	days = max(0, int(returnedAt.Sub(issuedAt)/day))
	lateDays = max(0, days-p.FreeDays)

	return days, lateDays, float64(lateDays) * p.FeePerDay
}
