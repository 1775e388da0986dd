package carousel

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/franchisemedia/adengine/pkg/cache"
	redisclient "github.com/franchisemedia/adengine/pkg/redis"
)

type mockImpressions struct {
	mock.Mock
}

func (m *mockImpressions) RecordImpression(ctx context.Context, slotID uuid.UUID) {
	m.Called(ctx, slotID)
}

func TestComposeService(t *testing.T) {
	appID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	categoryID := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	req := ComposeRequest{
		AppID:      appID,
		CategoryID: categoryID,
		Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	slotID := uuid.MustParse("88888888-8888-8888-8888-888888888888")
	branch := Candidate{
		BookingID:   uuid.MustParse("77777777-7777-7777-7777-777777777777"),
		SlotID:      slotID,
		ImageURL:    "https://cdn.example.com/branch.png",
		LinkURL:     "https://example.com/branch",
		GroupName:   SlotBranch1,
		Specificity: SpecificityDistrict,
		CreatedAt:   time.Now(),
	}
	pool := []FallbackAd{{ID: 1, ImageURL: "https://cdn.example.com/c.png", LinkURL: "https://example.com/c"}}

	t.Run("cache miss composes and stores the result", func(t *testing.T) {
		repo := new(mockCarouselRepo)
		repo.On("GetCandidates", mock.Anything, req).Return(map[string][]Candidate{SlotBranch1: {branch}}, nil)
		repo.On("GetFallbackPool", mock.Anything, req).Return(pool, nil)

		db, redisMock := redismock.NewClientMock()
		manager := cache.NewManager(redisclient.NewClientFromRedis(db))

		svc := NewService(repo, manager, nil, 30*time.Second)
		key := svc.cacheKey(req)

		redisMock.ExpectGet(key).RedisNil()
		redisMock.Regexp().ExpectSet(key, `.*`, 30*time.Second).SetVal("OK")

		result, err := svc.Compose(context.Background(), req)

		require.NoError(t, err)
		require.Len(t, result.Items, 4)
		repo.AssertExpectations(t)
		require.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the store but still counts impressions", func(t *testing.T) {
		repo := new(mockCarouselRepo)

		cached := ComposeResult{Items: []DisplayItem{
			{Position: 1, SlotName: SlotBranch1, SlotID: &slotID},
			{Position: 2, SlotName: SlotRegional1, IsFallback: true},
			{Position: 3, SlotName: SlotBranch2, IsFallback: true},
			{Position: 4, SlotName: SlotHeadOffice, IsFallback: true},
		}}
		raw, err := json.Marshal(cached)
		require.NoError(t, err)

		db, redisMock := redismock.NewClientMock()
		manager := cache.NewManager(redisclient.NewClientFromRedis(db))

		impressions := new(mockImpressions)
		impressions.On("RecordImpression", mock.Anything, slotID).Return()

		svc := NewService(repo, manager, impressions, 30*time.Second)
		redisMock.ExpectGet(svc.cacheKey(req)).SetVal(string(raw))

		result, err := svc.Compose(context.Background(), req)

		require.NoError(t, err)
		require.Len(t, result.Items, 4)
		repo.AssertNotCalled(t, "GetCandidates", mock.Anything, mock.Anything)
		impressions.AssertExpectations(t)
		require.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		repo := new(mockCarouselRepo)
		repo.On("GetCandidates", mock.Anything, req).Return(map[string][]Candidate{}, nil)
		repo.On("GetFallbackPool", mock.Anything, req).Return([]FallbackAd{}, nil)

		db, redisMock := redismock.NewClientMock()
		manager := cache.NewManager(redisclient.NewClientFromRedis(db))

		svc := NewService(repo, manager, nil, 30*time.Second)
		key := svc.cacheKey(req)

		redisMock.ExpectGet(key).RedisNil()
		redisMock.Regexp().ExpectSet(key, `.*`, 30*time.Second).SetErr(context.DeadlineExceeded)

		result, err := svc.Compose(context.Background(), req)

		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}
