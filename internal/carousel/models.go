package carousel

import (
	"time"

	"github.com/google/uuid"

	"github.com/franchisemedia/adengine/internal/booking"
)

// Slot names in display order. Two branch positions sandwich the regional
// one, with the head office ad closing the rotation. Bookings carry these
// names as their group_name, so each position has its own inventory.
const (
	SlotBranch1    = booking.SlotBranch1
	SlotRegional1  = booking.SlotRegional1
	SlotBranch2    = booking.SlotBranch2
	SlotHeadOffice = booking.SlotHeadOffice
)

// SlotOrder is the fixed carousel layout.
var SlotOrder = []string{SlotBranch1, SlotRegional1, SlotBranch2, SlotHeadOffice}

// Specificity ranks how precisely an ad targets the viewer's location.
const (
	SpecificityDistrict  = 4
	SpecificityState     = 3
	SpecificityCountry   = 2
	SpecificityCorporate = 1
)

// Candidate is a booked ad eligible for a carousel position.
type Candidate struct {
	BookingID   uuid.UUID
	SlotID      uuid.UUID // ad_slots row, for impression counting
	ImageURL    string
	LinkURL     string
	GroupName   string
	Specificity int
	CreatedAt   time.Time
}

// FallbackAd is a corporate house ad used to backfill empty positions.
// Nil app/category means the ad runs everywhere.
type FallbackAd struct {
	ID         int64      `json:"id"`
	ImageURL   string     `json:"image_url"`
	LinkURL    string     `json:"link_url"`
	AppID      *uuid.UUID `json:"app_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// DisplayItem is one rendered carousel position.
type DisplayItem struct {
	Position   int        `json:"position"`
	SlotName   string     `json:"slot_name"`
	ImageURL   string     `json:"image_url"`
	LinkURL    string     `json:"link_url"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	SlotID     *uuid.UUID `json:"slot_id,omitempty"`
	IsFallback bool       `json:"is_fallback"`
}

// ComposeRequest identifies the placement and the viewer's location.
type ComposeRequest struct {
	AppID      uuid.UUID
	CategoryID uuid.UUID
	CountryID  *uuid.UUID
	StateID    *uuid.UUID
	DistrictID *uuid.UUID
	Date       time.Time
}

// ComposeResult is the carousel payload: exactly four items, or none.
type ComposeResult struct {
	Items []DisplayItem `json:"items"`
}
