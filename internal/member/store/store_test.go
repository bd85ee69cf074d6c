package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/database/dbtest"
	"github.com/MrJamesThe3rd/libry/internal/member"
	"github.com/MrJamesThe3rd/libry/internal/member/store"
)

func TestStore_CRUD(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	m := &member.Member{Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, s.CreateMember(ctx, m))
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Zero(t, m.OutstandingDebt)

	m.Phone = "555-0100"
	require.NoError(t, s.UpdateMember(ctx, m))
	assert.NotNil(t, m.UpdatedAt)

	got, err := s.GetMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", got.Phone)

	all, err := s.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteMember(ctx, m.ID))
	_, err = s.GetMember(ctx, m.ID)
	assert.ErrorIs(t, err, member.ErrNotFound)
	assert.ErrorIs(t, s.DeleteMember(ctx, m.ID), member.ErrNotFound)
}

func TestStore_SettleDebt(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	m := &member.Member{Name: "Grace Hopper"}
	require.NoError(t, s.CreateMember(ctx, m))

	_, err := db.ExecContext(ctx, `UPDATE members SET outstanding_debt = 30 WHERE id = $1`, m.ID)
	require.NoError(t, err)

	got, err := s.SettleDebt(ctx, m.ID, 12.5)
	require.NoError(t, err)
	assert.InDelta(t, 17.5, got.OutstandingDebt, 0.0001)

	got, err = s.SettleDebt(ctx, m.ID, 100)
	require.NoError(t, err)
	assert.Zero(t, got.OutstandingDebt)

	_, err = s.SettleDebt(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, member.ErrNotFound)
}
