package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	FormActive   = "active"
	FormInactive = "inactive"
	FormArchived = "archived"
)

type FieldValidation struct {
	Required  bool `json:"required,omitempty"`
	MinLength int  `json:"minLength,omitempty"`
	MaxLength int  `json:"maxLength,omitempty"`
}

type FormField struct {
	FieldID    string          `json:"fieldId"`
	Type       string          `json:"type"`
	Label      string          `json:"label"`
	Required   bool            `json:"required"`
	Options    []string        `json:"options,omitempty"`
	Validation FieldValidation `json:"validation"`
}

type FormSettings struct {
	ShowOnTicketPurchase     bool `json:"showOnTicketPurchase"`
	ShowOnRegistration       bool `json:"showOnRegistration"`
	AllowMultipleSubmissions bool `json:"allowMultipleSubmissions"`
}

// CustomForm is the one aggregate in the system that is hard-deleted.
type CustomForm struct {
	ID          uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID                        `gorm:"type:uuid;not null;index" json:"eventId"`
	OrganizerID uuid.UUID                        `gorm:"type:uuid;not null;index" json:"organizerId"`
	Name        string                           `gorm:"not null;size:255" json:"name"`
	Type        string                           `gorm:"size:30;not null" json:"type"`
	Description string                           `gorm:"type:text" json:"description"`
	Fields      datatypes.JSONSlice[FormField]   `gorm:"type:jsonb" json:"fields"`
	Settings    datatypes.JSONType[FormSettings] `gorm:"type:jsonb" json:"settings"`
	Status      string                           `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt   time.Time                        `json:"created_at"`
	UpdatedAt   time.Time                        `json:"updated_at"`
}
