package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Ticket type lifecycle statuses. Soft delete is a transition to
// TicketCancelled.
const (
	TicketActive    = "active"
	TicketPaused    = "paused"
	TicketSoldOut   = "sold_out"
	TicketCancelled = "cancelled"
)

const (
	CategoryGeneral   = "general"
	CategoryVIP       = "vip"
	CategoryEarlyBird = "early_bird"
	CategoryGroup     = "group"
)

const DefaultCurrency = "USD"

type Fees struct {
	ServiceFee    float64 `json:"serviceFee"`
	ProcessingFee float64 `json:"processingFee"`
	Taxes         float64 `json:"taxes"`
}

type PriceTier struct {
	Tier     int     `json:"tier"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Sold     int     `json:"sold"`
}

type Pricing struct {
	BasePrice   float64     `json:"basePrice"`
	Currency    string      `json:"currency"`
	Fees        Fees        `json:"fees"`
	TotalPrice  float64     `json:"totalPrice"`
	TierPricing []PriceTier `json:"tierPricing,omitempty"`
}

// Normalize applies the pricing defaulting and derivation rules: currency
// falls back to USD and the total is the base price plus every itemized fee,
// with absent fees counting as zero.
func (p *Pricing) Normalize() {
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	p.TotalPrice = p.BasePrice + p.Fees.ServiceFee + p.Fees.ProcessingFee + p.Fees.Taxes
}

type Availability struct {
	TotalQuantity     int        `json:"totalQuantity"`
	SoldQuantity      int        `json:"soldQuantity"`
	ReservedQuantity  int        `json:"reservedQuantity"`
	AvailableQuantity int        `json:"availableQuantity"`
	SalesStart        *time.Time `json:"salesStart,omitempty"`
	SalesEnd          *time.Time `json:"salesEnd,omitempty"`
	UnlimitedQuantity bool       `json:"unlimitedQuantity"`
}

// Normalize derives the available quantity from total minus sold minus
// reserved. The result is deliberately not floored at zero: inconsistent
// inputs produce a negative availability rather than a hidden correction.
func (a *Availability) Normalize() {
	a.AvailableQuantity = a.TotalQuantity - a.SoldQuantity - a.ReservedQuantity
}

type Restrictions struct {
	MinQuantity      int        `json:"minQuantity"`
	MaxQuantity      int        `json:"maxQuantity"`
	RequiresApproval bool       `json:"requiresApproval"`
	HiddenUntilDate  *time.Time `json:"hiddenUntilDate"`
}

// Normalize fills purchase-quantity defaults (1..10). Min/max consistency is
// not validated.
func (r *Restrictions) Normalize() {
	if r.MinQuantity == 0 {
		r.MinQuantity = 1
	}
	if r.MaxQuantity == 0 {
		r.MaxQuantity = 10
	}
}

type TicketCustomField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

type TicketType struct {
	ID           uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID                              `gorm:"type:uuid;not null;index" json:"eventId"`
	Name         string                                 `gorm:"not null;size:255" json:"name"`
	Description  string                                 `gorm:"type:text" json:"description"`
	Category     string                                 `gorm:"size:20;default:'general'" json:"category"`
	Pricing      datatypes.JSONType[Pricing]            `gorm:"type:jsonb" json:"pricing"`
	Availability datatypes.JSONType[Availability]       `gorm:"type:jsonb" json:"availability"`
	Restrictions datatypes.JSONType[Restrictions]       `gorm:"type:jsonb" json:"restrictions"`
	Benefits     datatypes.JSONSlice[string]            `gorm:"type:jsonb" json:"benefits"`
	CustomFields datatypes.JSONSlice[TicketCustomField] `gorm:"type:jsonb" json:"customFields"`
	Status       string                                 `gorm:"size:20;default:'active'" json:"status"`
	SortOrder    int                                    `gorm:"default:0" json:"sortOrder"`
	CreatedAt    time.Time                              `json:"created_at"`
	UpdatedAt    time.Time                              `json:"updated_at"`
}
