package geography

import (
	"context"

	"github.com/google/uuid"
	"github.com/franchisemedia/adengine/pkg/logger"
	"go.uber.org/zap"
)

// Service exposes the location hierarchy to the pricing engine. Subordinate
// counts never come back as zero: a missing or unknown location id degrades to
// 1 so a price multiplier built from these counts can never zero out a price.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new geography service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// GetCountryByID returns a country by its ID
func (s *Service) GetCountryByID(ctx context.Context, id uuid.UUID) (*Country, error) {
	return s.repo.GetCountryByID(ctx, id)
}

// ListCountries returns all active countries
func (s *Service) ListCountries(ctx context.Context) ([]*Country, error) {
	return s.repo.ListCountries(ctx)
}

// ListStatesByCountry returns all active states for a country
func (s *Service) ListStatesByCountry(ctx context.Context, countryID uuid.UUID) ([]*State, error) {
	return s.repo.ListStatesByCountry(ctx, countryID)
}

// ListDistrictsByState returns all active districts for a state
func (s *Service) ListDistrictsByState(ctx context.Context, stateID uuid.UUID) ([]*District, error) {
	return s.repo.ListDistrictsByState(ctx, stateID)
}

// StateCount returns the number of states under a country, or 1 when the
// country id is missing or the hierarchy has no data for it.
func (s *Service) StateCount(ctx context.Context, countryID *uuid.UUID) int {
	if countryID == nil || *countryID == uuid.Nil {
		return 1
	}

	count, err := s.repo.CountStatesByCountry(ctx, *countryID)
	if err != nil {
		logger.WarnContext(ctx, "state count lookup failed, defaulting to 1",
			zap.String("country_id", countryID.String()), zap.Error(err))
		return 1
	}
	if count < 1 {
		return 1
	}

	return count
}

// DistrictCount returns the number of districts under a state, defaulting to 1.
func (s *Service) DistrictCount(ctx context.Context, stateID *uuid.UUID) int {
	if stateID == nil || *stateID == uuid.Nil {
		return 1
	}

	count, err := s.repo.CountDistrictsByState(ctx, *stateID)
	if err != nil {
		logger.WarnContext(ctx, "district count lookup failed, defaulting to 1",
			zap.String("state_id", stateID.String()), zap.Error(err))
		return 1
	}
	if count < 1 {
		return 1
	}

	return count
}

// DistrictCountForCountry returns the number of districts across all states
// of a country, defaulting to 1.
func (s *Service) DistrictCountForCountry(ctx context.Context, countryID *uuid.UUID) int {
	if countryID == nil || *countryID == uuid.Nil {
		return 1
	}

	count, err := s.repo.CountDistrictsByCountry(ctx, *countryID)
	if err != nil {
		logger.WarnContext(ctx, "country district count lookup failed, defaulting to 1",
			zap.String("country_id", countryID.String()), zap.Error(err))
		return 1
	}
	if count < 1 {
		return 1
	}

	return count
}
