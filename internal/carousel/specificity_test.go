package carousel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMatchSpecificity(t *testing.T) {
	country := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	state := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	district := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	otherState := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	otherDistrict := uuid.MustParse("55555555-5555-5555-5555-555555555555")

	viewer := ComposeRequest{
		CountryID:  &country,
		StateID:    &state,
		DistrictID: &district,
	}

	tests := []struct {
		name       string
		countryID  *uuid.UUID
		stateID    *uuid.UUID
		districtID *uuid.UUID
		want       int
	}{
		{
			name:       "district holder matches its own district",
			countryID:  &country,
			stateID:    &state,
			districtID: &district,
			want:       SpecificityDistrict,
		},
		{
			name:       "district holder never matches a sibling district",
			countryID:  &country,
			stateID:    &state,
			districtID: &otherDistrict,
			want:       0,
		},
		{
			name:      "state holder matches the viewer's state",
			countryID: &country,
			stateID:   &state,
			want:      SpecificityState,
		},
		{
			name:    "state holder in another state does not match",
			stateID: &otherState,
			want:    0,
		},
		{
			name:      "country holder matches the viewer's country",
			countryID: &country,
			want:      SpecificityCountry,
		},
		{
			name:      "country holder with a state set is scored at state level only",
			countryID: &country,
			stateID:   &otherState,
			want:      0,
		},
		{
			name: "corporate holder matches every viewer",
			want: SpecificityCorporate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchSpecificity(tt.countryID, tt.stateID, tt.districtID, viewer)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("corporate holder matches a viewer with no location at all", func(t *testing.T) {
		got := matchSpecificity(nil, nil, nil, ComposeRequest{})
		assert.Equal(t, SpecificityCorporate, got)
	})

	t.Run("located holders never match a viewer with no location", func(t *testing.T) {
		got := matchSpecificity(&country, &state, &district, ComposeRequest{})
		assert.Equal(t, 0, got)
	})
}
