package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/models"
)

var (
	ErrEventNotFound     = errors.New("event not found or not authorized")
	ErrEventDeleted      = errors.New("event already deleted")
	ErrUserInactive      = errors.New("user account is not active")
	ErrOrganizerInactive = errors.New("organizer is not active")
)

// DuplicateError reports a unique-constraint violation, echoing the violated
// key and value so the handler can name what collided.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return "duplicate " + e.Field + ": " + e.Value
}

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// EventInput is the already-parsed create payload. Structured sub-objects
// come through the lenient form parser, so malformed client JSON arrives
// here as zero documents rather than errors.
type EventInput struct {
	Title            string
	Slug             string
	Description      string
	ShortDescription string
	Status           string
	Dates            models.EventDates
	Location         models.EventLocation
	Categories       []string
	Tags             []string
	AgeRestrictions  models.AgeRestrictions
	Settings         models.EventSettings
	SEO              models.SEO
	Stats            models.EventStats
	Images           []models.EventImage
}

// Create builds an event for the calling organizer. Account and organizer
// active-status are re-checked here even though the role gate already did:
// the organizer row is re-read so a suspension that landed after token
// issuance still blocks the write.
func (s *EventService) Create(ctx context.Context, user *models.User, in EventInput) (*models.Event, error) {
	if user.Status != models.StatusActive {
		return nil, ErrUserInactive
	}

	var organizer models.Organizer
	err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&organizer).Error
	if err != nil || organizer.Status != models.StatusActive {
		return nil, ErrOrganizerInactive
	}

	normalizeCoordinates(&in.Location)

	eventSlug := in.Slug
	if eventSlug == "" {
		eventSlug = in.Title
	}

	status := in.Status
	if status == "" {
		status = models.EventDraft
	}

	event := models.Event{
		ID:               uuid.New(),
		OrganizerID:      organizer.ID,
		Title:            in.Title,
		Slug:             slug.Make(eventSlug),
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Images:           in.Images,
		Dates:            datatypes.NewJSONType(in.Dates),
		Location:         datatypes.NewJSONType(in.Location),
		Categories:       in.Categories,
		Tags:             in.Tags,
		AgeRestrictions:  datatypes.NewJSONType(in.AgeRestrictions),
		Settings:         datatypes.NewJSONType(in.Settings),
		SEO:              datatypes.NewJSONType(in.SEO),
		Stats:            datatypes.NewJSONType(in.Stats),
		Status:           status,
		Organizer: datatypes.NewJSONType(models.OrganizerSummary{
			Name: organizer.OrganizationName,
			Logo: organizer.Branding.Data().Logo,
			Slug: organizer.Slug,
		}),
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		// slug carries the only unique index on events
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateError{Field: "slug", Value: event.Slug}
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// EventUpdate applies the fixed allow-list of updatable fields. Nil means
// "leave unchanged"; the lenient parser maps absent or malformed JSON
// fields to nil on this path.
type EventUpdate struct {
	Title            *string
	Slug             *string
	Description      *string
	ShortDescription *string
	Status           *string
	Dates            *models.EventDates
	Location         *models.EventLocation
	Categories       *[]string
	Tags             *[]string
	AgeRestrictions  *models.AgeRestrictions
	Settings         *models.EventSettings
	SEO              *models.SEO
	Images           []models.EventImage
}

// Update mutates an event scoped by (eventID, organizerID); events owned by
// other organizers are indistinguishable from missing ones. A non-empty
// image list wholesale-replaces the stored images.
func (s *EventService) Update(ctx context.Context, organizerID, eventID uuid.UUID, upd EventUpdate) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Where("id = ? AND organizer_id = ?", eventID, organizerID).
		First(&event).Error
	if err != nil {
		return nil, ErrEventNotFound
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Slug != nil {
		event.Slug = *upd.Slug
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.ShortDescription != nil {
		event.ShortDescription = *upd.ShortDescription
	}
	if upd.Status != nil {
		event.Status = *upd.Status
	}
	if upd.Dates != nil {
		event.Dates = datatypes.NewJSONType(*upd.Dates)
	}
	if upd.Location != nil {
		normalizeCoordinates(upd.Location)
		event.Location = datatypes.NewJSONType(*upd.Location)
	}
	if upd.Categories != nil {
		event.Categories = *upd.Categories
	}
	if upd.Tags != nil {
		event.Tags = *upd.Tags
	}
	if upd.AgeRestrictions != nil {
		event.AgeRestrictions = datatypes.NewJSONType(*upd.AgeRestrictions)
	}
	if upd.Settings != nil {
		event.Settings = datatypes.NewJSONType(*upd.Settings)
	}
	if upd.SEO != nil {
		event.SEO = datatypes.NewJSONType(*upd.SEO)
	}
	if len(upd.Images) > 0 {
		event.Images = upd.Images
	}

	if err := s.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &event, nil
}

// SoftDelete marks the event deleted. Deleting twice is a conflict; there is
// no path that un-deletes.
func (s *EventService) SoftDelete(ctx context.Context, organizerID, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Where("id = ? AND organizer_id = ?", eventID, organizerID).
		First(&event).Error
	if err != nil {
		return nil, ErrEventNotFound
	}

	if event.Status == models.EventDeleted {
		return nil, ErrEventDeleted
	}

	event.Status = models.EventDeleted
	if err := s.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to delete event: %w", err)
	}
	return &event, nil
}

// normalizeCoordinates resets a GeoJSON point that does not carry exactly
// two numeric coordinates to [0, 0].
func normalizeCoordinates(loc *models.EventLocation) {
	if loc.Coordinates.Type != "Point" {
		return
	}
	if len(loc.Coordinates.Coordinates) != 2 {
		loc.Coordinates.Coordinates = []float64{0, 0}
	}
}
