package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service resolves office levels and franchise holders for pricing callers.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new identity service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// ResolveOfficeLevel determines the requesting principal's office level. An
// explicit level supplied by the caller (from a group_name request parameter)
// takes precedence over the group-membership lookup. A user without any
// membership is a branch.
func (s *Service) ResolveOfficeLevel(ctx context.Context, userID uuid.UUID, explicit string) (OfficeLevel, error) {
	if explicit != "" {
		return ParseOfficeLevel(explicit), nil
	}

	groupName, err := s.repo.PrimaryGroupOf(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoMembership) {
			return OfficeLevelBranch, nil
		}
		return "", err
	}

	return ParseOfficeLevel(groupName), nil
}

// FranchiseHolderOf returns the franchise holder owned by a user, or nil when
// the user has none. Pricing treats a missing holder as multiplier 1, so the
// absence is not an error here.
func (s *Service) FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*FranchiseHolder, error) {
	holder, err := s.repo.FranchiseHolderOf(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrHolderNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return holder, nil
}

// GetFranchiseHolder returns a franchise holder by ID; absence is an error
// for direct entity lookups.
func (s *Service) GetFranchiseHolder(ctx context.Context, id uuid.UUID) (*FranchiseHolder, error) {
	return s.repo.GetFranchiseHolder(ctx, id)
}
