package identity

import (
	"time"

	"github.com/google/uuid"
)

// OfficeLevel is a franchise holder's position in the office hierarchy.
type OfficeLevel string

const (
	OfficeLevelHead     OfficeLevel = "head_office"
	OfficeLevelRegional OfficeLevel = "regional"
	OfficeLevelBranch   OfficeLevel = "branch"
)

// ParseOfficeLevel maps a group or level name onto an office level. Anything
// unrecognized is a branch; branch is the default tier, not an error.
func ParseOfficeLevel(name string) OfficeLevel {
	switch name {
	case string(OfficeLevelHead):
		return OfficeLevelHead
	case string(OfficeLevelRegional):
		return OfficeLevelRegional
	default:
		return OfficeLevelBranch
	}
}

// FranchiseHolder records a principal's scope in the location hierarchy.
// More specific fields imply a narrower scope: a head office carries only a
// country, a regional office a state, a branch a district. Partial data is
// tolerated; pricing degrades to multiplier 1 when hierarchy fields are
// missing.
type FranchiseHolder struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	CountryID  *uuid.UUID `json:"country_id,omitempty"`
	StateID    *uuid.UUID `json:"state_id,omitempty"`
	DistrictID *uuid.UUID `json:"district_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
