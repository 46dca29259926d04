package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Account lifecycle statuses shared by User and Organizer.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

// Roles carried in User.Roles and in session token claims.
const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

type Preferences struct {
	Newsletter        bool `json:"newsletter"`
	EventReminders    bool `json:"eventReminders"`
	PromotionalEmails bool `json:"promotionalEmails"`
}

type Profile struct {
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar,omitempty"`
	DateOfBirth *time.Time  `json:"dateOfBirth,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// AuthInfo is persisted inside the user row as a jsonb sub-document. The
// password hash never leaves the service layer; handlers respond with DTOs,
// not with User directly.
type AuthInfo struct {
	Provider      string     `json:"provider"`
	ProviderID    string     `json:"providerId"`
	PasswordHash  string     `json:"passwordHash"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	LoginCount    int        `json:"loginCount"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type User struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string                       `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Profile   datatypes.JSONType[Profile]  `gorm:"type:jsonb" json:"profile"`
	Auth      datatypes.JSONType[AuthInfo] `gorm:"type:jsonb" json:"-"`
	Address   datatypes.JSONType[Address]  `gorm:"type:jsonb" json:"address"`
	Roles     datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"roles"`
	Status    string                       `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
