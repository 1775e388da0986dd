package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/franchisemedia/adengine/pkg/common"
)

// Resolver produces per-day price series from the two-tier price table.
type Resolver struct {
	repo RepositoryInterface
}

// NewResolver creates a new pricing resolver
func NewResolver(repo RepositoryInterface) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveInput carries the key and range for one resolution.
type ResolveInput struct {
	CountryID  *uuid.UUID
	Slot       PricingSlot
	AdsType    AdsType
	AppID      uuid.UUID
	CategoryID uuid.UUID
	HolderID   *uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Multiplier int
}

// ResolveRange resolves one DayPrice per calendar date in [start, end].
// Precedence per date: slave override, else master base price, else 0 —
// a price of 0 means "not yet configured" upstream, not a fault. An inverted
// or empty range yields an empty series. Booked dates are still priced (the
// portal displays them) but flagged so purchase flows can exclude them.
func (r *Resolver) ResolveRange(ctx context.Context, in ResolveInput) ([]DayPrice, error) {
	days := make([]DayPrice, 0)
	if in.EndDate.Before(in.StartDate) {
		return days, nil
	}

	multiplier := in.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	var master *PricingMaster
	if in.CountryID != nil && *in.CountryID != uuid.Nil {
		found, err := r.repo.GetLatestMaster(ctx, *in.CountryID, in.Slot, in.AdsType)
		if err != nil {
			return nil, err
		}
		master = found
	}

	overrides := map[string]float64{}
	if master != nil {
		found, err := r.repo.GetSlaveOverrides(ctx, master.ID, in.AppID, in.CategoryID, in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		overrides = found
	}

	booked := map[string]bool{}
	if in.HolderID != nil && *in.HolderID != uuid.Nil {
		found, err := r.repo.GetBookedDates(ctx, in.AppID, in.CategoryID, *in.HolderID, in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		booked = found
	}

	for d := in.StartDate; !d.After(in.EndDate); d = d.AddDate(0, 0, 1) {
		key := d.Format(common.DateLayout)

		base := 0.0
		if master != nil {
			base = master.BasePrice
		}
		if override, ok := overrides[key]; ok {
			base = override
		}

		days = append(days, DayPrice{
			Date:       key,
			BasePrice:  base,
			Multiplier: multiplier,
			Price:      base * float64(multiplier),
			IsBooked:   booked[key],
		})
	}

	return days, nil
}
