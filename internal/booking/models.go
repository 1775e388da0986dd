package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/franchisemedia/adengine/internal/identity"
	"github.com/franchisemedia/adengine/internal/pricing"
)

// Sellable carousel positions. Each name doubles as the booking's
// group_name, so exclusivity and candidate gathering are scoped per
// position, not per office level.
const (
	SlotBranch1    = "branch_ads1"
	SlotBranch2    = "branch_ads2"
	SlotRegional1  = "regional_ads1"
	SlotHeadOffice = "head_office_ads1"
)

var slotLevels = map[string]identity.OfficeLevel{
	SlotBranch1:    identity.OfficeLevelBranch,
	SlotBranch2:    identity.OfficeLevelBranch,
	SlotRegional1:  identity.OfficeLevelRegional,
	SlotHeadOffice: identity.OfficeLevelHead,
}

// OfficeLevelForSlot maps a priority-slot name to the office level allowed
// to sell it. The second return is false for unknown names.
func OfficeLevelForSlot(slot string) (identity.OfficeLevel, bool) {
	level, ok := slotLevels[slot]
	return level, ok
}

// OverrideScope identifies the pricing catalog rows a booking consumes, so
// only overrides under the matching master are flagged as booked.
type OverrideScope struct {
	CountryID *uuid.UUID
	Slot      pricing.PricingSlot
	AdsType   pricing.AdsType
}

// BookingStatus represents the lifecycle state of a header-ad booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusActive   BookingStatus = "active"
	StatusInactive BookingStatus = "inactive"
	StatusRejected BookingStatus = "rejected"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusRejected:
		return true
	}
	return false
}

// AdBooking is the purchase record for a header-ad placement.
type AdBooking struct {
	ID          uuid.UUID     `json:"id"`
	HolderID    uuid.UUID     `json:"franchise_holder_id"`
	AppID       uuid.UUID     `json:"app_id"`
	CategoryID  uuid.UUID     `json:"category_id"`
	GroupName   string        `json:"group_name"`
	AdSlot      string        `json:"ad_slot"`
	LinkURL     string        `json:"link_url"`
	ImageURL    string        `json:"image_url"`
	TotalPrice  float64       `json:"total_price"`
	Status      BookingStatus `json:"status"`
	ClickCount  int64         `json:"click_count"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Slots       []AdSlot      `json:"slots,omitempty"`
}

// AdSlot is one reserved calendar day under a booking. The app, category
// and group columns are denormalized so the exclusivity index can live on
// this table alone.
type AdSlot struct {
	ID              uuid.UUID `json:"id"`
	BookingID       uuid.UUID `json:"booking_id"`
	AppID           uuid.UUID `json:"app_id"`
	CategoryID      uuid.UUID `json:"category_id"`
	GroupName       string    `json:"group_name"`
	SelectedDate    time.Time `json:"selected_date"`
	Price           float64   `json:"price"`
	ImpressionCount int64     `json:"impression_count"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateBookingRequest is the payload for booking a set of days.
type CreateBookingRequest struct {
	AppID      uuid.UUID `json:"app_id" binding:"required"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	AdSlot     string    `json:"ad_slot" binding:"required"`
	LinkURL    string    `json:"link_url" binding:"required,url"`
	ImageURL   string    `json:"image_url" binding:"required,url"`
	Dates      []string  `json:"dates" binding:"required,min=1"`
}

// UpdateStatusRequest moves a booking between lifecycle states.
type UpdateStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// ListFilter narrows a booking listing.
type ListFilter struct {
	HolderID *uuid.UUID
	Status   *BookingStatus
	Limit    int
	Offset   int
}
