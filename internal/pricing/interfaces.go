package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RepositoryInterface defines the pricing catalog store operations.
type RepositoryInterface interface {
	// GetLatestMaster returns the most recently created master row for the
	// key, or nil when none exists.
	GetLatestMaster(ctx context.Context, countryID uuid.UUID, slot PricingSlot, adsType AdsType) (*PricingMaster, error)

	// GetSlaveOverrides returns per-date override prices for a master keyed
	// by date string (YYYY-MM-DD).
	GetSlaveOverrides(ctx context.Context, masterID, appID, categoryID uuid.UUID, from, to time.Time) (map[string]float64, error)

	// GetBookedDates returns the dates in range that already carry an active
	// ad slot for (app, category, holder), keyed by date string.
	GetBookedDates(ctx context.Context, appID, categoryID, holderID uuid.UUID, from, to time.Time) (map[string]bool, error)

	UpsertMaster(ctx context.Context, req UpsertMasterRequest) (*PricingMaster, error)
	UpsertSlave(ctx context.Context, req UpsertSlaveRequest, date time.Time) (*PricingSlave, error)
}

// GeoCounter is the slice of the geography service the multiplier needs.
type GeoCounter interface {
	StateCount(ctx context.Context, countryID *uuid.UUID) int
	DistrictCount(ctx context.Context, stateID *uuid.UUID) int
	DistrictCountForCountry(ctx context.Context, countryID *uuid.UUID) int
}
