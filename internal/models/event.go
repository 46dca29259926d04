package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event lifecycle statuses. "deleted" is terminal: soft-deleted events are
// never resurrected by any flow.
const (
	EventDraft     = "draft"
	EventActive    = "active"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
	EventSuspended = "suspended"
	EventDeleted   = "deleted"
)

type EventImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

type EventDates struct {
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	SaleStartDate *time.Time `json:"saleStartDate,omitempty"`
	SaleEndDate   *time.Time `json:"saleEndDate,omitempty"`
	Timezone      string     `json:"timezone,omitempty"`
}

// GeoPoint follows the GeoJSON convention: coordinates are
// [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type Venue struct {
	Name      string   `json:"name,omitempty"`
	Capacity  int      `json:"capacity,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

type EventLocation struct {
	Name        string   `json:"name,omitempty"`
	Address     Address  `json:"address"`
	Coordinates GeoPoint `json:"coordinates"`
	Venue       Venue    `json:"venue"`
}

type AgeRestrictions struct {
	MinAge           int  `json:"minAge,omitempty"`
	MaxAge           int  `json:"maxAge,omitempty"`
	RequiresGuardian bool `json:"requiresGuardian,omitempty"`
}

type EventSettings struct {
	Visibility         string `json:"visibility,omitempty"`
	RequiresApproval   bool   `json:"requiresApproval"`
	MaxTicketsPerUser  int    `json:"maxTicketsPerUser,omitempty"`
	Transferable       bool   `json:"transferable"`
	Refundable         bool   `json:"refundable"`
	CancellationPolicy string `json:"cancellationPolicy,omitempty"`
}

type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// OrganizerSummary is denormalized into the event at creation time and is
// not kept in sync with later organizer edits.
type OrganizerSummary struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
	Slug string `json:"slug"`
}

type EventStats struct {
	TotalTickets     int     `json:"totalTickets"`
	SoldTickets      int     `json:"soldTickets"`
	AvailableTickets int     `json:"availableTickets"`
	Revenue          float64 `json:"revenue"`
	Views            int     `json:"views"`
	Favorites        int     `json:"favorites"`
}

type Event struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizerID      uuid.UUID                            `gorm:"type:uuid;not null;index" json:"organizerId"`
	Title            string                               `gorm:"not null;size:255" json:"title"`
	Slug             string                               `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description      string                               `gorm:"type:text" json:"description"`
	ShortDescription string                               `gorm:"type:text" json:"shortDescription"`
	Images           datatypes.JSONSlice[EventImage]      `gorm:"type:jsonb" json:"images"`
	Dates            datatypes.JSONType[EventDates]       `gorm:"type:jsonb" json:"dates"`
	Location         datatypes.JSONType[EventLocation]    `gorm:"type:jsonb" json:"location"`
	Categories       datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"categories"`
	Tags             datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"tags"`
	AgeRestrictions  datatypes.JSONType[AgeRestrictions]  `gorm:"type:jsonb" json:"ageRestrictions"`
	Settings         datatypes.JSONType[EventSettings]    `gorm:"type:jsonb" json:"settings"`
	SEO              datatypes.JSONType[SEO]              `gorm:"type:jsonb" json:"seo"`
	Organizer        datatypes.JSONType[OrganizerSummary] `gorm:"type:jsonb" json:"organizer"`
	Stats            datatypes.JSONType[EventStats]       `gorm:"type:jsonb" json:"stats"`
	Status           string                               `gorm:"size:20;default:'draft'" json:"status"`
	CreatedAt        time.Time                            `json:"created_at"`
	UpdatedAt        time.Time                            `json:"updated_at"`
}
