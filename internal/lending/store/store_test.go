package store_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/book"
	bookstore "github.com/MrJamesThe3rd/libry/internal/book/store"
	"github.com/MrJamesThe3rd/libry/internal/database/dbtest"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	"github.com/MrJamesThe3rd/libry/internal/lending/store"
	"github.com/MrJamesThe3rd/libry/internal/member"
	memberstore "github.com/MrJamesThe3rd/libry/internal/member/store"
)

type env struct {
	db      *sql.DB
	books   *bookstore.Store
	members *memberstore.Store
	store   *store.Store
}

func setup(t *testing.T) env {
	t.Helper()

	db := dbtest.Open(t)

	return env{
		db:      db,
		books:   bookstore.New(db),
		members: memberstore.New(db),
		store:   store.New(db),
	}
}

func (e env) seed(t *testing.T, stock int) (*member.Member, *book.Book) {
	t.Helper()

	ctx := context.Background()

	m := &member.Member{Name: "Ada Lovelace"}
	require.NoError(t, e.members.CreateMember(ctx, m))

	b := &book.Book{Title: "Dune", Authors: "Frank Herbert", Stock: stock}
	require.NoError(t, e.books.CreateBook(ctx, b))

	return m, b
}

func TestStore_IssueAndReturn(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m, b := e.seed(t, 3)

	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	svc := lending.NewService(e.store, lending.WithClock(func() time.Time { return clock }))

	issue, err := svc.Issue(ctx, m.ID, b.ID)
	require.NoError(t, err)

	got, err := e.books.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	open, err := svc.OpenLoans(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, issue.ID, open[0].ID)

	clock = clock.AddDate(0, 0, 20)

	receipt, err := svc.Return(ctx, m.ID, b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, receipt.Fee, 0.0001)
	assert.Equal(t, issue.ID, *receipt.Return.IssueID)

	got, err = e.books.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	gotMember, err := e.members.GetMember(ctx, m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, gotMember.OutstandingDebt, 0.0001)

	open, err = svc.OpenLoans(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = svc.Return(ctx, m.ID, b.ID)
	assert.ErrorIs(t, err, lending.ErrNoOpenIssue)

	history, err := svc.History(ctx, lending.ListFilter{MemberID: &m.ID})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, lending.KindReturn, history[0].Kind, "newest first")
	assert.Equal(t, lending.KindIssue, history[1].Kind)

	kind := lending.KindReturn
	returns, err := svc.History(ctx, lending.ListFilter{BookID: &b.ID, Kind: &kind})
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.InDelta(t, 12.0, returns[0].Fee, 0.0001)
}

func TestStore_Issue_RejectionsLeaveNoTrace(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := lending.NewService(e.store)

	t.Run("OutOfStock", func(t *testing.T) {
		m, b := e.seed(t, 0)

		_, err := svc.Issue(ctx, m.ID, b.ID)
		assert.ErrorIs(t, err, lending.ErrOutOfStock)

		history, err := svc.History(ctx, lending.ListFilter{BookID: &b.ID})
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("DebtLimit", func(t *testing.T) {
		m, b := e.seed(t, 4)

		_, err := e.db.ExecContext(ctx, `UPDATE members SET outstanding_debt = 600 WHERE id = $1`, m.ID)
		require.NoError(t, err)

		_, err = svc.Issue(ctx, m.ID, b.ID)
		assert.ErrorIs(t, err, lending.ErrDebtLimitExceeded)

		got, err := e.books.GetBook(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Stock)
	})
}

func TestStore_ReturnClosesMostRecentIssue(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m, b := e.seed(t, 2)

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := lending.NewService(e.store, lending.WithClock(func() time.Time { return clock }))

	_, err := svc.Issue(ctx, m.ID, b.ID)
	require.NoError(t, err)

	clock = clock.AddDate(0, 0, 10)

	second, err := svc.Issue(ctx, m.ID, b.ID)
	require.NoError(t, err)

	clock = clock.AddDate(0, 0, 1)

	receipt, err := svc.Return(ctx, m.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, receipt.Issue.ID)
	assert.Equal(t, 1, receipt.Days)

	open, err := svc.OpenLoans(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestStore_ConcurrentIssueOfLastCopy(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := lending.NewService(e.store)

	_, b := e.seed(t, 1)

	const borrowers = 8

	members := make([]*member.Member, borrowers)
	for i := range members {
		members[i] = &member.Member{Name: "Borrower"}
		require.NoError(t, e.members.CreateMember(ctx, members[i]))
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		outOfStock int
	)

	for _, m := range members {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Issue(ctx, m.ID, b.ID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, lending.ErrOutOfStock):
				outOfStock++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, borrowers-1, outOfStock)

	got, err := e.books.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestStore_DeleteGuardedByHistory(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m, b := e.seed(t, 1)

	_, err := lending.NewService(e.store).Issue(ctx, m.ID, b.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, e.books.DeleteBook(ctx, b.ID), book.ErrInUse)
	assert.ErrorIs(t, e.members.DeleteMember(ctx, m.ID), member.ErrInUse)
}
