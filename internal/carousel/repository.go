package carousel

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the carousel data-access contract
type RepositoryInterface interface {
	// GetCandidates returns the active booked ads eligible for the given
	// placement and day, grouped by priority slot, each scored against the
	// viewer's location.
	GetCandidates(ctx context.Context, req ComposeRequest) (map[string][]Candidate, error)
	// GetFallbackPool returns corporate house ads, newest first.
	GetFallbackPool(ctx context.Context, req ComposeRequest) ([]FallbackAd, error)
}

// Repository handles carousel data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new carousel repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCandidates(ctx context.Context, req ComposeRequest) (map[string][]Candidate, error) {
	// Each row carries the holder's raw location columns; the hierarchical
	// match is scored in matchSpecificity so a holder never matches outside
	// its own scope. Rows that score zero are not shown.
	query := `
		SELECT b.id, s.id, b.image_url, b.link_url, b.group_name, b.created_at,
			fh.country_id, fh.state_id, fh.district_id
		FROM ad_slots s
		JOIN ad_bookings b ON b.id = s.booking_id
		JOIN franchise_holders fh ON fh.id = b.franchise_holder_id
		WHERE s.app_id = $1
		  AND s.category_id = $2
		  AND s.selected_date = $3::date
		  AND s.is_active = true
		  AND b.status = $4`

	rows, err := r.db.Query(ctx, query, req.AppID, req.CategoryID, req.Date, "active")
	if err != nil {
		return nil, fmt.Errorf("failed to query carousel candidates: %w", err)
	}
	defer rows.Close()

	candidates := make(map[string][]Candidate)
	for rows.Next() {
		var c Candidate
		var countryID, stateID, districtID *uuid.UUID
		err := rows.Scan(&c.BookingID, &c.SlotID, &c.ImageURL, &c.LinkURL,
			&c.GroupName, &c.CreatedAt, &countryID, &stateID, &districtID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan carousel candidate: %w", err)
		}
		c.Specificity = matchSpecificity(countryID, stateID, districtID, req)
		if c.Specificity == 0 {
			continue
		}
		candidates[c.GroupName] = append(candidates[c.GroupName], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read carousel candidates: %w", err)
	}

	return candidates, nil
}

func (r *Repository) GetFallbackPool(ctx context.Context, req ComposeRequest) ([]FallbackAd, error) {
	query := `
		SELECT id, image_url, link_url, app_id, category_id
		FROM corporate_ads
		WHERE is_active = true
		  AND (app_id IS NULL OR app_id = $1)
		  AND (category_id IS NULL OR category_id = $2)
		ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query, req.AppID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fallback pool: %w", err)
	}
	defer rows.Close()

	var pool []FallbackAd
	for rows.Next() {
		var ad FallbackAd
		if err := rows.Scan(&ad.ID, &ad.ImageURL, &ad.LinkURL, &ad.AppID, &ad.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan fallback ad: %w", err)
		}
		pool = append(pool, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fallback pool: %w", err)
	}

	return pool, nil
}
