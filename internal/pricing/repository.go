package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/franchisemedia/adengine/pkg/common"
)

// Repository handles database operations for the pricing catalog
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new pricing repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetLatestMaster retrieves the most recently created master price row for
// (country, slot, ads type). Returns nil without error when none exists.
func (r *Repository) GetLatestMaster(ctx context.Context, countryID uuid.UUID, slot PricingSlot, adsType AdsType) (*PricingMaster, error) {
	query := `
		SELECT id, country_id, pricing_slot, ads_type, base_price, created_at, updated_at
		FROM pricing_masters
		WHERE country_id = $1 AND pricing_slot = $2 AND ads_type = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	m := &PricingMaster{}
	err := r.db.QueryRow(ctx, query, countryID, slot, adsType).Scan(
		&m.ID, &m.CountryID, &m.Slot, &m.AdsType, &m.BasePrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pricing master: %w", err)
	}

	return m, nil
}

// GetSlaveOverrides retrieves per-date override prices for a master row.
func (r *Repository) GetSlaveOverrides(ctx context.Context, masterID, appID, categoryID uuid.UUID, from, to time.Time) (map[string]float64, error) {
	query := `
		SELECT price_date, price
		FROM pricing_slaves
		WHERE master_id = $1 AND app_id = $2 AND category_id = $3
		  AND price_date BETWEEN $4 AND $5
	`

	rows, err := r.db.Query(ctx, query, masterID, appID, categoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]float64)
	for rows.Next() {
		var date time.Time
		var price float64
		if err := rows.Scan(&date, &price); err != nil {
			return nil, fmt.Errorf("failed to scan pricing override: %w", err)
		}
		overrides[date.Format(common.DateLayout)] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pricing overrides: %w", err)
	}

	return overrides, nil
}

// GetBookedDates retrieves dates already carrying an active ad slot for the
// (app, category, holder) scope.
func (r *Repository) GetBookedDates(ctx context.Context, appID, categoryID, holderID uuid.UUID, from, to time.Time) (map[string]bool, error) {
	query := `
		SELECT s.selected_date
		FROM ad_slots s
		JOIN ad_bookings b ON s.booking_id = b.id
		WHERE s.app_id = $1 AND s.category_id = $2 AND b.franchise_holder_id = $3
		  AND s.selected_date BETWEEN $4 AND $5
		  AND s.is_active = true
	`

	rows, err := r.db.Query(ctx, query, appID, categoryID, holderID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked dates: %w", err)
	}
	defer rows.Close()

	booked := make(map[string]bool)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan booked date: %w", err)
		}
		booked[date.Format(common.DateLayout)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booked dates: %w", err)
	}

	return booked, nil
}

// UpsertMaster creates or updates the master price for its key. The unique
// index on (country_id, pricing_slot, ads_type) keeps the table free of the
// duplicate rows the legacy portal accumulated.
func (r *Repository) UpsertMaster(ctx context.Context, req UpsertMasterRequest) (*PricingMaster, error) {
	query := `
		INSERT INTO pricing_masters (id, country_id, pricing_slot, ads_type, base_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (country_id, pricing_slot, ads_type)
		DO UPDATE SET base_price = EXCLUDED.base_price, updated_at = NOW()
		RETURNING id, country_id, pricing_slot, ads_type, base_price, created_at, updated_at
	`

	m := &PricingMaster{}
	err := r.db.QueryRow(ctx, query, uuid.New(), req.CountryID, req.Slot, req.AdsType, req.BasePrice).Scan(
		&m.ID, &m.CountryID, &m.Slot, &m.AdsType, &m.BasePrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pricing master: %w", err)
	}

	return m, nil
}

// UpsertSlave creates or updates a per-date override for a master row.
func (r *Repository) UpsertSlave(ctx context.Context, req UpsertSlaveRequest, date time.Time) (*PricingSlave, error) {
	query := `
		INSERT INTO pricing_slaves (id, master_id, app_id, category_id, price_date, price, is_booked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
		ON CONFLICT (master_id, app_id, category_id, price_date)
		DO UPDATE SET price = EXCLUDED.price
		RETURNING id, master_id, app_id, category_id, price_date, price, is_booked, created_at
	`

	s := &PricingSlave{}
	err := r.db.QueryRow(ctx, query, uuid.New(), req.MasterID, req.AppID, req.CategoryID, date, req.Price).Scan(
		&s.ID, &s.MasterID, &s.AppID, &s.CategoryID, &s.PriceDate, &s.Price, &s.IsBooked, &s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pricing override: %w", err)
	}

	return s, nil
}
