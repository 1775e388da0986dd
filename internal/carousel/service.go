package carousel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/franchisemedia/adengine/pkg/cache"
	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/logger"
)

// ImpressionRecorder counts a served ad day. Implemented by the booking
// service; failures stay on its side.
type ImpressionRecorder interface {
	RecordImpression(ctx context.Context, slotID uuid.UUID)
}

// Service handles carousel composition
type Service struct {
	repo        RepositoryInterface
	cache       *cache.Manager
	impressions ImpressionRecorder
	cacheTTL    time.Duration
}

// NewService creates a new carousel service
func NewService(repo RepositoryInterface, cacheManager *cache.Manager, impressions ImpressionRecorder, cacheTTL time.Duration) *Service {
	return &Service{
		repo:        repo,
		cache:       cacheManager,
		impressions: impressions,
		cacheTTL:    cacheTTL,
	}
}

// Compose returns the carousel for a placement, day and viewer location.
// Results are cached briefly so a burst of page loads hits the store once.
// Impressions are counted on every call, cached or not.
func (s *Service) Compose(ctx context.Context, req ComposeRequest) (*ComposeResult, error) {
	key := s.cacheKey(req)

	var result ComposeResult
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &result); err == nil {
			s.countImpressions(ctx, result.Items)
			return &result, nil
		}
	}

	candidates, err := s.repo.GetCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetFallbackPool(ctx, req)
	if err != nil {
		return nil, err
	}

	result = Compose(candidates, pool)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			logger.WarnContext(ctx, "failed to cache carousel", zap.String("key", key), zap.Error(err))
		}
	}

	s.countImpressions(ctx, result.Items)
	return &result, nil
}

func (s *Service) countImpressions(ctx context.Context, items []DisplayItem) {
	if s.impressions == nil {
		return
	}
	for _, item := range items {
		if item.SlotID != nil {
			s.impressions.RecordImpression(ctx, *item.SlotID)
		}
	}
}

func (s *Service) cacheKey(req ComposeRequest) string {
	return fmt.Sprintf("carousel:%s:%s:%s:%s:%s:%s",
		req.AppID, req.CategoryID,
		uuidOrDash(req.CountryID), uuidOrDash(req.StateID), uuidOrDash(req.DistrictID),
		req.Date.Format(common.DateLayout))
}

func uuidOrDash(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}
