package dto

import "encoding/json"

// Ticket sub-objects stay raw here and go through the lenient parser in the
// handler: a malformed or string-encoded block degrades to its zero document
// instead of failing the whole request.
type TicketCreateRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Status       string          `json:"status"`
	SortOrder    int             `json:"sortOrder"`
	Pricing      json.RawMessage `json:"pricing"`
	Availability json.RawMessage `json:"availability"`
	Restrictions json.RawMessage `json:"restrictions"`
	Benefits     json.RawMessage `json:"benefits"`
	CustomFields json.RawMessage `json:"customFields"`
}

// TicketUpdateRequest mirrors the create shape; on the update path an absent
// or malformed sub-object means "leave the stored value unchanged".
type TicketUpdateRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Status       string          `json:"status"`
	SortOrder    int             `json:"sortOrder"`
	Pricing      json.RawMessage `json:"pricing"`
	Availability json.RawMessage `json:"availability"`
	Restrictions json.RawMessage `json:"restrictions"`
	Benefits     json.RawMessage `json:"benefits"`
	CustomFields json.RawMessage `json:"customFields"`
}
