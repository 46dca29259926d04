package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Organizer verification statuses.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type ContactInfo struct {
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Website     string      `json:"website,omitempty"`
	SocialMedia SocialMedia `json:"socialMedia"`
}

type Branding struct {
	Logo           string `json:"logo,omitempty"`
	Banner         string `json:"banner,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
}

type VerificationDocument struct {
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Verification struct {
	Status     string                 `json:"status"`
	VerifiedAt *time.Time             `json:"verifiedAt,omitempty"`
	Documents  []VerificationDocument `json:"documents"`
}

type BankingInfo struct {
	AccountHolderName  string `json:"accountHolderName,omitempty"`
	AccountNumber      string `json:"accountNumber,omitempty"`
	RoutingNumber      string `json:"routingNumber,omitempty"`
	PaymentProcessorID string `json:"paymentProcessorId,omitempty"`
}

type OrganizerSettings struct {
	AutoApproveRefunds  bool   `json:"autoApproveRefunds"`
	DefaultRefundPolicy string `json:"defaultRefundPolicy,omitempty"`
	Timezone            string `json:"timezone,omitempty"`
}

type OrganizerStats struct {
	TotalEvents      int     `json:"totalEvents"`
	TotalTicketsSold int     `json:"totalTicketsSold"`
	TotalRevenue     float64 `json:"totalRevenue"`
	AverageRating    float64 `json:"averageRating"`
}

type Organizer struct {
	ID               uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                             `gorm:"type:uuid;not null;index" json:"userId"`
	OrganizationName string                                `gorm:"not null;size:255" json:"organizationName"`
	Slug             string                                `gorm:"uniqueIndex;size:255" json:"slug"`
	Description      string                                `gorm:"type:text" json:"description"`
	ContactInfo      datatypes.JSONType[ContactInfo]       `gorm:"type:jsonb" json:"contactInfo"`
	Address          datatypes.JSONType[Address]           `gorm:"type:jsonb" json:"address"`
	Branding         datatypes.JSONType[Branding]          `gorm:"type:jsonb" json:"branding"`
	Verification     datatypes.JSONType[Verification]      `gorm:"type:jsonb" json:"verification"`
	BankingInfo      datatypes.JSONType[BankingInfo]       `gorm:"type:jsonb" json:"-"`
	Settings         datatypes.JSONType[OrganizerSettings] `gorm:"type:jsonb" json:"settings"`
	Stats            datatypes.JSONType[OrganizerStats]    `gorm:"type:jsonb" json:"stats"`
	Status           string                                `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt        time.Time                             `json:"created_at"`
	UpdatedAt        time.Time                             `json:"updated_at"`
}
