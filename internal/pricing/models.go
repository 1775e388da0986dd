package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/franchisemedia/adengine/internal/identity"
)

// PricingSlot selects which price table column a master row belongs to.
type PricingSlot string

const (
	SlotGeneral  PricingSlot = "general"
	SlotCapitals PricingSlot = "capitals"
)

// Valid reports whether the slot is a known value.
func (s PricingSlot) Valid() bool {
	return s == SlotGeneral || s == SlotCapitals
}

// AdsType identifies the ad placement family a price applies to.
type AdsType string

const (
	AdsTypeHeader AdsType = "header_ads"
	AdsTypePopup  AdsType = "popup_ads"
	AdsTypeMiddle AdsType = "middle_ads"
)

// Valid reports whether the ads type is a known value.
func (t AdsType) Valid() bool {
	return t == AdsTypeHeader || t == AdsTypePopup || t == AdsTypeMiddle
}

// PricingMaster is the coarse default price for (country, slot, ads type).
// The store enforces uniqueness on that key; the resolver still prefers the
// most recently created row so legacy duplicate data degrades predictably.
type PricingMaster struct {
	ID        uuid.UUID   `json:"id"`
	CountryID uuid.UUID   `json:"country_id"`
	Slot      PricingSlot `json:"pricing_slot"`
	AdsType   AdsType     `json:"ads_type"`
	BasePrice float64     `json:"base_price"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PricingSlave overrides its master's price for one (app, category, date).
type PricingSlave struct {
	ID         uuid.UUID `json:"id"`
	MasterID   uuid.UUID `json:"master_id"`
	AppID      uuid.UUID `json:"app_id"`
	CategoryID uuid.UUID `json:"category_id"`
	PriceDate  time.Time `json:"price_date"`
	Price      float64   `json:"price"`
	IsBooked   bool      `json:"is_booked"`
	CreatedAt  time.Time `json:"created_at"`
}

// DayPrice is one date of a resolved price series.
type DayPrice struct {
	Date      string  `json:"date"`
	BasePrice float64 `json:"base_price"`
	Multiplier int    `json:"multiplier"`
	Price     float64 `json:"price"`
	IsBooked  bool    `json:"is_booked"`
}

// Quote is the full pricing response for a date range.
type Quote struct {
	OfficeLevel identity.OfficeLevel `json:"office_level"`
	Multiplier  int                  `json:"multiplier"`
	Days        []DayPrice           `json:"data"`
}

// QuoteInput carries everything needed to price a date range for a principal.
type QuoteInput struct {
	UserID        uuid.UUID
	AppID         uuid.UUID
	CategoryID    uuid.UUID
	Slot          PricingSlot
	AdsType       AdsType
	StartDate     time.Time
	EndDate       time.Time
	ExplicitLevel string // from a group_name/office_level request parameter
}

// UpsertMasterRequest creates or updates a master price row.
type UpsertMasterRequest struct {
	CountryID uuid.UUID   `json:"country_id" binding:"required"`
	Slot      PricingSlot `json:"pricing_slot" binding:"required"`
	AdsType   AdsType     `json:"ads_type" binding:"required"`
	BasePrice float64     `json:"base_price" binding:"required,gte=0"`
}

// UpsertSlaveRequest creates or updates a per-date override.
type UpsertSlaveRequest struct {
	MasterID   uuid.UUID `json:"master_id" binding:"required"`
	AppID      uuid.UUID `json:"app_id" binding:"required"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Price      float64   `json:"price" binding:"required,gte=0"`
}
