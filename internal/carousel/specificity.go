package carousel

import "github.com/google/uuid"

// matchSpecificity scores how precisely a holder's location targets the
// viewer. A holder is scored at its most specific non-null level and
// nowhere else: a district holder only matches its own district, a state
// holder (district null) its own state, a country holder (state and
// district null) its own country. A holder with no location at all is the
// corporate tier and matches every viewer. Zero means no match.
func matchSpecificity(countryID, stateID, districtID *uuid.UUID, req ComposeRequest) int {
	switch {
	case districtID != nil:
		if req.DistrictID != nil && *districtID == *req.DistrictID {
			return SpecificityDistrict
		}
	case stateID != nil:
		if req.StateID != nil && *stateID == *req.StateID {
			return SpecificityState
		}
	case countryID != nil:
		if req.CountryID != nil && *countryID == *req.CountryID {
			return SpecificityCountry
		}
	default:
		return SpecificityCorporate
	}
	return 0
}
