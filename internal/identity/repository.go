package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoMembership is returned when a user has no group membership at all.
var ErrNoMembership = errors.New("user has no group membership")

// ErrHolderNotFound is returned when no franchise holder exists for a lookup.
var ErrHolderNotFound = errors.New("franchise holder not found")

// RepositoryInterface defines the identity/membership store operations.
type RepositoryInterface interface {
	PrimaryGroupOf(ctx context.Context, userID uuid.UUID) (string, error)
	FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*FranchiseHolder, error)
	GetFranchiseHolder(ctx context.Context, id uuid.UUID) (*FranchiseHolder, error)
}

// Repository handles database operations for identity
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new identity repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// PrimaryGroupOf returns the name of a user's first group membership.
func (r *Repository) PrimaryGroupOf(ctx context.Context, userID uuid.UUID) (string, error) {
	query := `
		SELECT g.name
		FROM user_groups ug
		JOIN groups g ON ug.group_id = g.id
		WHERE ug.user_id = $1
		ORDER BY ug.created_at
		LIMIT 1
	`

	var name string
	err := r.db.QueryRow(ctx, query, userID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoMembership
		}
		return "", fmt.Errorf("failed to get primary group: %w", err)
	}

	return name, nil
}

// FranchiseHolderOf returns the franchise holder owned by a user.
func (r *Repository) FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*FranchiseHolder, error) {
	query := `
		SELECT id, user_id, country_id, state_id, district_id, created_at, updated_at
		FROM franchise_holders
		WHERE user_id = $1
	`

	h := &FranchiseHolder{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&h.ID, &h.UserID, &h.CountryID, &h.StateID, &h.DistrictID, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHolderNotFound
		}
		return nil, fmt.Errorf("failed to get franchise holder: %w", err)
	}

	return h, nil
}

// GetFranchiseHolder returns a franchise holder by its ID.
func (r *Repository) GetFranchiseHolder(ctx context.Context, id uuid.UUID) (*FranchiseHolder, error) {
	query := `
		SELECT id, user_id, country_id, state_id, district_id, created_at, updated_at
		FROM franchise_holders
		WHERE id = $1
	`

	h := &FranchiseHolder{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.UserID, &h.CountryID, &h.StateID, &h.DistrictID, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHolderNotFound
		}
		return nil, fmt.Errorf("failed to get franchise holder: %w", err)
	}

	return h, nil
}
