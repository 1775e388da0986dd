package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/franchisemedia/adengine/internal/pricing"
)

// RepositoryInterface defines the booking data-access contract
type RepositoryInterface interface {
	// CreateBooking inserts the booking, one slot per date, and flags the
	// price overrides under the scoped master as sold, all in one
	// transaction. It returns ErrSlotTaken when any requested day is
	// already held by an active slot for the same app, category and
	// priority slot.
	CreateBooking(ctx context.Context, b *AdBooking, slots []AdSlot, scope OverrideScope) error
	GetBooking(ctx context.Context, id uuid.UUID) (*AdBooking, error)
	ListBookings(ctx context.Context, filter ListFilter) ([]AdBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
	IncrementImpression(ctx context.Context, slotID uuid.UUID) error
	// IncrementClick bumps the counter and returns the click-through URL.
	IncrementClick(ctx context.Context, bookingID uuid.UUID) (string, error)
}

// PriceResolver resolves the authoritative per-day prices for a booking.
// Client-supplied prices are never trusted.
type PriceResolver interface {
	GetQuote(ctx context.Context, in pricing.QuoteInput) (*pricing.Quote, error)
}
