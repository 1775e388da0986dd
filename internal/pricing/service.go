package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/franchisemedia/adengine/internal/identity"
	"github.com/franchisemedia/adengine/pkg/common"
)

// IdentityResolver is the slice of the identity service the quote path needs.
type IdentityResolver interface {
	ResolveOfficeLevel(ctx context.Context, userID uuid.UUID, explicit string) (identity.OfficeLevel, error)
	FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*identity.FranchiseHolder, error)
}

// Service handles pricing business logic
type Service struct {
	repo       RepositoryInterface
	resolver   *Resolver
	calculator *Calculator
	identity   IdentityResolver
}

// NewService creates a new pricing service
func NewService(repo RepositoryInterface, resolver *Resolver, calculator *Calculator, identitySvc IdentityResolver) *Service {
	return &Service{
		repo:       repo,
		resolver:   resolver,
		calculator: calculator,
		identity:   identitySvc,
	}
}

// GetQuote resolves the per-day price series for a principal and date range.
func (s *Service) GetQuote(ctx context.Context, in QuoteInput) (*Quote, error) {
	level, err := s.identity.ResolveOfficeLevel(ctx, in.UserID, in.ExplicitLevel)
	if err != nil {
		return nil, err
	}

	holder, err := s.identity.FranchiseHolderOf(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	multiplier := s.calculator.Multiplier(ctx, level, holder)

	resolveIn := ResolveInput{
		Slot:       in.Slot,
		AdsType:    in.AdsType,
		AppID:      in.AppID,
		CategoryID: in.CategoryID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Multiplier: multiplier,
	}
	if holder != nil {
		resolveIn.CountryID = holder.CountryID
		holderID := holder.ID
		resolveIn.HolderID = &holderID
	}

	days, err := s.resolver.ResolveRange(ctx, resolveIn)
	if err != nil {
		return nil, err
	}

	return &Quote{
		OfficeLevel: level,
		Multiplier:  multiplier,
		Days:        days,
	}, nil
}

// UpsertMaster creates or updates a master price row (admin path).
func (s *Service) UpsertMaster(ctx context.Context, req UpsertMasterRequest) (*PricingMaster, error) {
	if !req.Slot.Valid() {
		return nil, common.NewValidationError("invalid pricing_slot")
	}
	if !req.AdsType.Valid() {
		return nil, common.NewValidationError("invalid ads_type")
	}

	return s.repo.UpsertMaster(ctx, req)
}

// UpsertSlave creates or updates a per-date override (admin path).
func (s *Service) UpsertSlave(ctx context.Context, req UpsertSlaveRequest) (*PricingSlave, error) {
	date, err := time.Parse(common.DateLayout, req.Date)
	if err != nil {
		return nil, common.NewValidationError("invalid date, expected YYYY-MM-DD")
	}

	return s.repo.UpsertSlave(ctx, req, date)
}
