package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) PrimaryGroupOf(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*FranchiseHolder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FranchiseHolder), args.Error(1)
}

func (m *mockRepo) GetFranchiseHolder(ctx context.Context, id uuid.UUID) (*FranchiseHolder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FranchiseHolder), args.Error(1)
}

func TestResolveOfficeLevel(t *testing.T) {
	userID := uuid.MustParse("10000000-0000-0000-0000-000000000001")

	tests := []struct {
		name       string
		explicit   string
		setupMocks func(m *mockRepo)
		want       OfficeLevel
		wantErr    bool
	}{
		{
			name:       "explicit level skips the membership lookup",
			explicit:   "head_office",
			setupMocks: func(m *mockRepo) {},
			want:       OfficeLevelHead,
		},
		{
			name:       "unknown explicit level falls back to branch",
			explicit:   "super_office",
			setupMocks: func(m *mockRepo) {},
			want:       OfficeLevelBranch,
		},
		{
			name:     "membership group decides the level",
			explicit: "",
			setupMocks: func(m *mockRepo) {
				m.On("PrimaryGroupOf", mock.Anything, userID).Return("regional", nil)
			},
			want: OfficeLevelRegional,
		},
		{
			name:     "no membership means branch",
			explicit: "",
			setupMocks: func(m *mockRepo) {
				m.On("PrimaryGroupOf", mock.Anything, userID).Return("", ErrNoMembership)
			},
			want: OfficeLevelBranch,
		},
		{
			name:     "store errors surface",
			explicit: "",
			setupMocks: func(m *mockRepo) {
				m.On("PrimaryGroupOf", mock.Anything, userID).Return("", errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockRepo)
			tt.setupMocks(m)

			svc := NewService(m)
			got, err := svc.ResolveOfficeLevel(context.Background(), userID, tt.explicit)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestFranchiseHolderOf(t *testing.T) {
	userID := uuid.MustParse("10000000-0000-0000-0000-000000000001")

	t.Run("missing holder is nil, not an error", func(t *testing.T) {
		m := new(mockRepo)
		m.On("FranchiseHolderOf", mock.Anything, userID).Return(nil, ErrHolderNotFound)

		svc := NewService(m)
		holder, err := svc.FranchiseHolderOf(context.Background(), userID)

		require.NoError(t, err)
		assert.Nil(t, holder)
	})

	t.Run("existing holder is returned", func(t *testing.T) {
		m := new(mockRepo)
		want := &FranchiseHolder{ID: uuid.New(), UserID: userID}
		m.On("FranchiseHolderOf", mock.Anything, userID).Return(want, nil)

		svc := NewService(m)
		holder, err := svc.FranchiseHolderOf(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, want, holder)
	})
}

func TestParseOfficeLevel(t *testing.T) {
	assert.Equal(t, OfficeLevelHead, ParseOfficeLevel("head_office"))
	assert.Equal(t, OfficeLevelRegional, ParseOfficeLevel("regional"))
	assert.Equal(t, OfficeLevelBranch, ParseOfficeLevel("branch"))
	assert.Equal(t, OfficeLevelBranch, ParseOfficeLevel(""))
	assert.Equal(t, OfficeLevelBranch, ParseOfficeLevel("something_else"))
}
