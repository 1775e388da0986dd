package geography

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for geography
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new geography repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetCountryByID retrieves a country by its ID
func (r *Repository) GetCountryByID(ctx context.Context, id uuid.UUID) (*Country, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM countries
		WHERE id = $1
	`

	c := &Country{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}

	return c, nil
}

// ListCountries retrieves all active countries
func (r *Repository) ListCountries(ctx context.Context) ([]*Country, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM countries
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]*Country, 0)
	for rows.Next() {
		c := &Country{}
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}

	return countries, nil
}

// ListStatesByCountry retrieves all active states for a country
func (r *Repository) ListStatesByCountry(ctx context.Context, countryID uuid.UUID) ([]*State, error) {
	query := `
		SELECT id, country_id, name, is_active, created_at, updated_at
		FROM states
		WHERE country_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	states := make([]*State, 0)
	for rows.Next() {
		s := &State{}
		if err := rows.Scan(&s.ID, &s.CountryID, &s.Name, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, s)
	}

	return states, nil
}

// ListDistrictsByState retrieves all active districts for a state
func (r *Repository) ListDistrictsByState(ctx context.Context, stateID uuid.UUID) ([]*District, error) {
	query := `
		SELECT id, state_id, name, is_active, created_at, updated_at
		FROM districts
		WHERE state_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, stateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()

	districts := make([]*District, 0)
	for rows.Next() {
		d := &District{}
		if err := rows.Scan(&d.ID, &d.StateID, &d.Name, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, d)
	}

	return districts, nil
}

// CountStatesByCountry counts active states under a country
func (r *Repository) CountStatesByCountry(ctx context.Context, countryID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM states WHERE country_id = $1 AND is_active = true`

	var count int
	if err := r.db.QueryRow(ctx, query, countryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count states: %w", err)
	}

	return count, nil
}

// CountDistrictsByState counts active districts under a state
func (r *Repository) CountDistrictsByState(ctx context.Context, stateID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM districts WHERE state_id = $1 AND is_active = true`

	var count int
	if err := r.db.QueryRow(ctx, query, stateID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count districts: %w", err)
	}

	return count, nil
}

// CountDistrictsByCountry counts active districts across all states of a country
func (r *Repository) CountDistrictsByCountry(ctx context.Context, countryID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM districts d
		JOIN states s ON d.state_id = s.id
		WHERE s.country_id = $1 AND d.is_active = true AND s.is_active = true
	`

	var count int
	if err := r.db.QueryRow(ctx, query, countryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count districts for country: %w", err)
	}

	return count, nil
}
