package carousel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCarouselRepo struct {
	mock.Mock
}

func (m *mockCarouselRepo) GetCandidates(ctx context.Context, req ComposeRequest) (map[string][]Candidate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]Candidate), args.Error(1)
}

func (m *mockCarouselRepo) GetFallbackPool(ctx context.Context, req ComposeRequest) ([]FallbackAd, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FallbackAd), args.Error(1)
}

func setupCarouselTestContext(query string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/carousel?"+query, nil)
	return c, w
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return response
}

func TestHandler_GetCarousel(t *testing.T) {
	appID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	categoryID := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	baseQuery := "app_id=" + appID.String() + "&category_id=" + categoryID.String()

	t.Run("full carousel responds with four items", func(t *testing.T) {
		repo := new(mockCarouselRepo)
		repo.On("GetCandidates", mock.Anything, mock.Anything).Return(map[string][]Candidate{
			SlotBranch1: {{
				BookingID:   uuid.New(),
				SlotID:      uuid.New(),
				ImageURL:    "https://cdn.example.com/branch.png",
				LinkURL:     "https://example.com/branch",
				GroupName:   SlotBranch1,
				Specificity: SpecificityDistrict,
				CreatedAt:   time.Now(),
			}},
		}, nil)
		repo.On("GetFallbackPool", mock.Anything, mock.Anything).Return([]FallbackAd{{
			ID:       1,
			ImageURL: "https://cdn.example.com/corporate.png",
			LinkURL:  "https://example.com/corporate",
		}}, nil)

		handler := NewHandler(NewService(repo, nil, nil, 30*time.Second))
		c, w := setupCarouselTestContext(baseQuery + "&selected_date=2026-09-01")

		handler.GetCarousel(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := parseResponse(w)
		assert.True(t, response["success"].(bool))
		require.Len(t, response["data"].([]interface{}), 4)
		repo.AssertExpectations(t)
	})

	t.Run("nothing to show responds with an empty list", func(t *testing.T) {
		repo := new(mockCarouselRepo)
		repo.On("GetCandidates", mock.Anything, mock.Anything).Return(map[string][]Candidate{}, nil)
		repo.On("GetFallbackPool", mock.Anything, mock.Anything).Return([]FallbackAd{}, nil)

		handler := NewHandler(NewService(repo, nil, nil, 30*time.Second))
		c, w := setupCarouselTestContext(baseQuery)

		handler.GetCarousel(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := parseResponse(w)
		assert.True(t, response["success"].(bool))
		assert.Equal(t, "no ads available", response["message"])
		assert.Empty(t, response["data"])
	})

	t.Run("missing app_id is a bad request", func(t *testing.T) {
		repo := new(mockCarouselRepo)

		handler := NewHandler(NewService(repo, nil, nil, 30*time.Second))
		c, w := setupCarouselTestContext("category_id=" + categoryID.String())

		handler.GetCarousel(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "GetCandidates", mock.Anything, mock.Anything)
	})

	t.Run("malformed category_id is a bad request", func(t *testing.T) {
		handler := NewHandler(NewService(new(mockCarouselRepo), nil, nil, 30*time.Second))
		c, w := setupCarouselTestContext("app_id=" + appID.String() + "&category_id=not-a-uuid")

		handler.GetCarousel(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("viewer location flows into the candidate query", func(t *testing.T) {
		districtID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

		repo := new(mockCarouselRepo)
		repo.On("GetCandidates", mock.Anything, mock.MatchedBy(func(req ComposeRequest) bool {
			return req.DistrictID != nil && *req.DistrictID == districtID
		})).Return(map[string][]Candidate{}, nil)
		repo.On("GetFallbackPool", mock.Anything, mock.Anything).Return([]FallbackAd{}, nil)

		handler := NewHandler(NewService(repo, nil, nil, 30*time.Second))
		c, w := setupCarouselTestContext(baseQuery + "&district_id=" + districtID.String())

		handler.GetCarousel(c)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})
}
