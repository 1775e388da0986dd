package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/franchisemedia/adengine/internal/identity"
	"github.com/franchisemedia/adengine/internal/pricing"
	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/eventbus"
	"github.com/franchisemedia/adengine/pkg/logger"
)

// IdentityResolver resolves the caller's office scope.
type IdentityResolver interface {
	ResolveOfficeLevel(ctx context.Context, userID uuid.UUID, explicit string) (identity.OfficeLevel, error)
	FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*identity.FranchiseHolder, error)
}

// Service handles booking business logic
type Service struct {
	repo     RepositoryInterface
	pricing  PriceResolver
	identity IdentityResolver
	events   eventbus.Publisher
}

// NewService creates a new booking service
func NewService(repo RepositoryInterface, priceResolver PriceResolver, identityResolver IdentityResolver, events eventbus.Publisher) *Service {
	return &Service{
		repo:     repo,
		pricing:  priceResolver,
		identity: identityResolver,
		events:   events,
	}
}

// Book prices and reserves the requested days for the caller. Prices come
// from the pricing resolver at booking time, never from the client.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*AdBooking, error) {
	level, err := s.identity.ResolveOfficeLevel(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	slotLevel, ok := OfficeLevelForSlot(req.AdSlot)
	if !ok {
		return nil, common.NewValidationError("unknown ad slot name")
	}
	if slotLevel != level {
		return nil, common.NewValidationError("ad slot is not sellable at the caller's office level")
	}

	holder, err := s.identity.FranchiseHolderOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if holder == nil {
		return nil, common.NewBadRequestError("user has no franchise holder profile", nil)
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}
	if len(dates) == 0 {
		return nil, common.NewValidationError("at least one date is required")
	}

	quote, err := s.pricing.GetQuote(ctx, pricing.QuoteInput{
		UserID:     userID,
		AppID:      req.AppID,
		CategoryID: req.CategoryID,
		Slot:       pricing.SlotGeneral,
		AdsType:    pricing.AdsTypeHeader,
		StartDate:  dates[0],
		EndDate:    dates[len(dates)-1],
	})
	if err != nil {
		return nil, err
	}

	priceByDate := make(map[string]float64, len(quote.Days))
	for _, d := range quote.Days {
		priceByDate[d.Date] = d.Price
	}

	// group_name stores the priority-slot name, so the exclusivity index
	// keeps branch_ads1 and branch_ads2 sellable independently.
	b := &AdBooking{
		ID:         uuid.New(),
		HolderID:   holder.ID,
		AppID:      req.AppID,
		CategoryID: req.CategoryID,
		GroupName:  req.AdSlot,
		AdSlot:     req.AdSlot,
		LinkURL:    req.LinkURL,
		ImageURL:   req.ImageURL,
		Status:     StatusActive,
	}

	slots := make([]AdSlot, 0, len(dates))
	for _, date := range dates {
		price := priceByDate[date.Format(common.DateLayout)]
		b.TotalPrice += price
		slots = append(slots, AdSlot{
			ID:           uuid.New(),
			BookingID:    b.ID,
			AppID:        req.AppID,
			CategoryID:   req.CategoryID,
			GroupName:    req.AdSlot,
			SelectedDate: date,
			Price:        price,
			IsActive:     true,
		})
	}

	scope := OverrideScope{
		CountryID: holder.CountryID,
		Slot:      pricing.SlotGeneral,
		AdsType:   pricing.AdsTypeHeader,
	}
	if err := s.repo.CreateBooking(ctx, b, slots, scope); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, common.NewConflictError("one or more dates are already booked for this placement")
		}
		return nil, err
	}
	b.Slots = slots

	s.publishEvent(ctx, eventbus.SubjectBookingCreated, map[string]interface{}{
		"booking_id":  b.ID.String(),
		"holder_id":   holder.ID.String(),
		"app_id":      req.AppID.String(),
		"category_id": req.CategoryID.String(),
		"group_name":  req.AdSlot,
		"total_price": b.TotalPrice,
		"dates":       req.Dates,
	})

	return b, nil
}

// GetBooking returns a booking with its slots.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*AdBooking, error) {
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, common.NewNotFoundError("booking not found", err)
		}
		return nil, err
	}
	return b, nil
}

// ListForUser returns the caller's bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, status *BookingStatus, limit, offset int) ([]AdBooking, error) {
	holder, err := s.identity.FranchiseHolderOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if holder == nil {
		return []AdBooking{}, nil
	}
	return s.repo.ListBookings(ctx, ListFilter{
		HolderID: &holder.ID,
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	})
}

// UpdateStatus moves a booking between lifecycle states.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*AdBooking, error) {
	if !status.Valid() {
		return nil, common.NewValidationError("invalid booking status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, common.NewNotFoundError("booking not found", err)
		}
		return nil, err
	}
	return s.GetBooking(ctx, id)
}

// RecordClick bumps a booking's click counter, emits a click event, and
// returns the click-through destination.
func (s *Service) RecordClick(ctx context.Context, bookingID uuid.UUID) (string, error) {
	linkURL, err := s.repo.IncrementClick(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return "", common.NewNotFoundError("booking not found", err)
		}
		return "", err
	}

	s.publishEvent(ctx, eventbus.SubjectAdClicked, map[string]interface{}{
		"booking_id": bookingID.String(),
	})
	return linkURL, nil
}

// RecordImpression bumps a slot's impression counter. Failures are logged
// and swallowed so delivery paths never fail on analytics.
func (s *Service) RecordImpression(ctx context.Context, slotID uuid.UUID) {
	if err := s.repo.IncrementImpression(ctx, slotID); err != nil {
		logger.WarnContext(ctx, "failed to increment impression counter",
			zap.String("slot_id", slotID.String()), zap.Error(err))
		return
	}

	s.publishEvent(ctx, eventbus.SubjectSlotImpression, map[string]interface{}{
		"slot_id": slotID.String(),
	})
}

// publishEvent emits a bus event, logging and swallowing failures.
func (s *Service) publishEvent(ctx context.Context, subject string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	event, err := eventbus.NewEvent(subject, "booking", data)
	if err != nil {
		logger.WarnContext(ctx, "failed to build event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.events.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// parseDates validates, dedupes and sorts the requested dates.
func parseDates(raw []string) ([]time.Time, error) {
	seen := make(map[string]bool, len(raw))
	dates := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		date, err := time.Parse(common.DateLayout, value)
		if err != nil {
			return nil, errors.New("dates must be in YYYY-MM-DD format")
		}
		key := date.Format(common.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
