package geography

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the read-only geography store operations.
type RepositoryInterface interface {
	GetCountryByID(ctx context.Context, id uuid.UUID) (*Country, error)
	ListCountries(ctx context.Context) ([]*Country, error)
	ListStatesByCountry(ctx context.Context, countryID uuid.UUID) ([]*State, error)
	ListDistrictsByState(ctx context.Context, stateID uuid.UUID) ([]*District, error)
	CountStatesByCountry(ctx context.Context, countryID uuid.UUID) (int, error)
	CountDistrictsByState(ctx context.Context, stateID uuid.UUID) (int, error)
	CountDistrictsByCountry(ctx context.Context, countryID uuid.UUID) (int, error)
}
