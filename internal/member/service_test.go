package member_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/libry/internal/member"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    member.CreateParams
		setupMock func(m *member.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: member.CreateParams{Name: " Ada ", Email: "ada@example.com"},
			setupMock: func(m *member.MockRepository) {
				m.EXPECT().
					CreateMember(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mem *member.Member) error {
						assert.Equal(t, "Ada", mem.Name)
						mem.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "MissingName",
			params:  member.CreateParams{Email: "nobody@example.com"},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: member.CreateParams{Name: "Ada"},
			setupMock: func(m *member.MockRepository) {
				m.EXPECT().CreateMember(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := member.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := member.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Zero(t, got.OutstandingDebt)
		})
	}
}

func TestService_Update_KeepsDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := member.NewMockRepository(ctrl)

	id := uuid.New()
	repo.EXPECT().GetMember(gomock.Any(), id).
		Return(&member.Member{ID: id, Name: "Ada", OutstandingDebt: 42}, nil)
	repo.EXPECT().UpdateMember(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *member.Member) error {
			assert.Equal(t, "ada@example.com", m.Email)
			assert.InDelta(t, 42.0, m.OutstandingDebt, 0.0001)

			return nil
		})

	got, err := member.NewService(repo).Update(context.Background(), id, member.UpdateParams{Email: new("ada@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := member.NewMockRepository(ctrl)

	id := uuid.New()
	repo.EXPECT().GetMember(gomock.Any(), id).Return(nil, member.ErrNotFound)

	_, err := member.NewService(repo).Update(context.Background(), id, member.UpdateParams{Name: new("X")})
	assert.ErrorIs(t, err, member.ErrNotFound)
}

func TestService_SettleDebt(t *testing.T) {
	id := uuid.New()

	t.Run("RejectsNonPositive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := member.NewMockRepository(ctrl)

		for _, amount := range []float64{0, -10} {
			_, err := member.NewService(repo).SettleDebt(context.Background(), id, amount)
			assert.ErrorIs(t, err, member.ErrInvalid)
		}
	})

	t.Run("DelegatesToRepo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := member.NewMockRepository(ctrl)

		repo.EXPECT().SettleDebt(gomock.Any(), id, 20.0).
			Return(&member.Member{ID: id, OutstandingDebt: 5}, nil)

		got, err := member.NewService(repo).SettleDebt(context.Background(), id, 20)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, got.OutstandingDebt, 0.0001)
	})
}

func TestService_Delete_InUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := member.NewMockRepository(ctrl)

	id := uuid.New()
	repo.EXPECT().DeleteMember(gomock.Any(), id).Return(member.ErrInUse)

	assert.ErrorIs(t, member.NewService(repo).Delete(context.Background(), id), member.ErrInUse)
}
