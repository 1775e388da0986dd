package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrSlotTaken means at least one requested day is already held by an
	// active slot for the same app, category and priority slot.
	ErrSlotTaken = errors.New("slot already booked for one or more dates")
	// ErrBookingNotFound means no booking exists for the given ID.
	ErrBookingNotFound = errors.New("booking not found")
)

// Repository handles booking data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new booking repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateBooking inserts the booking and its slots atomically. Slot inserts
// use ON CONFLICT DO NOTHING against the active-slot exclusivity index; a
// short insert count means another booking holds one of the days, and the
// whole transaction rolls back.
func (r *Repository) CreateBooking(ctx context.Context, b *AdBooking, slots []AdSlot, scope OverrideScope) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO ad_bookings (id, franchise_holder_id, app_id, category_id, group_name,
			ad_slot, link_url, image_url, total_price, status, click_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		b.ID, b.HolderID, b.AppID, b.CategoryID, b.GroupName,
		b.AdSlot, b.LinkURL, b.ImageURL, b.TotalPrice, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	slotQuery := `
		INSERT INTO ad_slots (id, booking_id, app_id, category_id, group_name,
			selected_date, price, impression_count, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, true, NOW())
		ON CONFLICT DO NOTHING`

	dates := make([]time.Time, 0, len(slots))
	for i := range slots {
		tag, err := tx.Exec(ctx, slotQuery,
			slots[i].ID, b.ID, slots[i].AppID, slots[i].CategoryID, slots[i].GroupName,
			slots[i].SelectedDate, slots[i].Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ad slot: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrSlotTaken
		}
		dates = append(dates, slots[i].SelectedDate)
	}

	// Sold days are flagged on the price table in the same transaction so
	// the catalog and the ledger never disagree. Only overrides under the
	// master this booking was priced against are touched; a holder without
	// a country has no master and nothing to flag.
	_, err = tx.Exec(ctx,
		`UPDATE pricing_slaves ps SET is_booked = true
		 FROM pricing_masters pm
		 WHERE pm.id = ps.master_id
		   AND pm.country_id = $1 AND pm.pricing_slot = $2 AND pm.ads_type = $3
		   AND ps.app_id = $4 AND ps.category_id = $5 AND ps.price_date = ANY($6)`,
		scope.CountryID, scope.Slot, scope.AdsType, b.AppID, b.CategoryID, dates,
	)
	if err != nil {
		return fmt.Errorf("failed to flag price overrides: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}

// GetBooking returns a booking with its slots.
func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*AdBooking, error) {
	query := `
		SELECT id, franchise_holder_id, app_id, category_id, group_name, ad_slot,
			link_url, image_url, total_price, status, click_count, created_at, updated_at
		FROM ad_bookings
		WHERE id = $1`

	var b AdBooking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.HolderID, &b.AppID, &b.CategoryID, &b.GroupName, &b.AdSlot,
		&b.LinkURL, &b.ImageURL, &b.TotalPrice, &b.Status, &b.ClickCount,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	slotQuery := `
		SELECT id, booking_id, app_id, category_id, group_name, selected_date,
			price, impression_count, is_active, created_at
		FROM ad_slots
		WHERE booking_id = $1
		ORDER BY selected_date`

	rows, err := r.db.Query(ctx, slotQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s AdSlot
		err := rows.Scan(
			&s.ID, &s.BookingID, &s.AppID, &s.CategoryID, &s.GroupName,
			&s.SelectedDate, &s.Price, &s.ImpressionCount, &s.IsActive, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ad slot: %w", err)
		}
		b.Slots = append(b.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking slots: %w", err)
	}

	return &b, nil
}

// ListBookings returns bookings matching the filter, newest first.
func (r *Repository) ListBookings(ctx context.Context, filter ListFilter) ([]AdBooking, error) {
	query := `
		SELECT id, franchise_holder_id, app_id, category_id, group_name, ad_slot,
			link_url, image_url, total_price, status, click_count, created_at, updated_at
		FROM ad_bookings
		WHERE ($1::uuid IS NULL OR franchise_holder_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.db.Query(ctx, query, filter.HolderID, filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []AdBooking
	for rows.Next() {
		var b AdBooking
		err := rows.Scan(
			&b.ID, &b.HolderID, &b.AppID, &b.CategoryID, &b.GroupName, &b.AdSlot,
			&b.LinkURL, &b.ImageURL, &b.TotalPrice, &b.Status, &b.ClickCount,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus moves a booking between lifecycle states. Deactivating a
// booking also deactivates its slots so the days become bookable again.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE ad_bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	active := status == StatusActive || status == StatusPending
	_, err = tx.Exec(ctx,
		`UPDATE ad_slots SET is_active = $1 WHERE booking_id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update slot activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit status update: %w", err)
	}
	return nil
}

// IncrementImpression adds one to a slot's impression counter.
func (r *Repository) IncrementImpression(ctx context.Context, slotID uuid.UUID) error {
	query := `UPDATE ad_slots SET impression_count = impression_count + 1 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, slotID); err != nil {
		return fmt.Errorf("failed to increment impressions: %w", err)
	}
	return nil
}

// IncrementClick adds one to a booking's click counter and returns the
// click-through destination.
func (r *Repository) IncrementClick(ctx context.Context, bookingID uuid.UUID) (string, error) {
	query := `
		UPDATE ad_bookings
		SET click_count = click_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING link_url`

	var linkURL string
	err := r.db.QueryRow(ctx, query, bookingID).Scan(&linkURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrBookingNotFound
		}
		return "", fmt.Errorf("failed to increment clicks: %w", err)
	}
	return linkURL, nil
}
