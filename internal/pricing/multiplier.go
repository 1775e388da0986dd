package pricing

import (
	"context"

	"github.com/franchisemedia/adengine/internal/identity"
)

// Calculator turns an office level and a franchise holder's location into the
// integer multiplier applied to base prices. The policy is reach-proportional:
// a head-office ad reaches every state and district under its country, so it
// pays states × districts; a regional ad pays the district count of its state;
// a branch ad reaches one district, the pricing unit.
type Calculator struct {
	geo GeoCounter
}

// NewCalculator creates a new multiplier calculator
func NewCalculator(geo GeoCounter) *Calculator {
	return &Calculator{geo: geo}
}

// Multiplier computes the price multiplier, never less than 1. A holder with
// missing hierarchy data degrades to 1 rather than erroring.
func (c *Calculator) Multiplier(ctx context.Context, level identity.OfficeLevel, holder *identity.FranchiseHolder) int {
	if holder == nil {
		return 1
	}

	switch level {
	case identity.OfficeLevelHead:
		if holder.CountryID == nil {
			return 1
		}
		states := c.geo.StateCount(ctx, holder.CountryID)
		districts := c.geo.DistrictCountForCountry(ctx, holder.CountryID)
		return clampMultiplier(states * districts)
	case identity.OfficeLevelRegional:
		if holder.StateID == nil {
			return 1
		}
		return clampMultiplier(c.geo.DistrictCount(ctx, holder.StateID))
	default:
		return 1
	}
}

func clampMultiplier(m int) int {
	if m < 1 {
		return 1
	}
	return m
}
