package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/models"
)

var ErrTicketNotFound = errors.New("ticket type not found for the event")

// ValidationError accumulates every missing required field so the client
// sees all violations in one response instead of one per round trip.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, ", ")
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// TicketInput is the parsed create payload. Pricing, availability and
// restrictions arrive through the lenient form parser.
type TicketInput struct {
	Name         string
	Description  string
	Category     string
	Status       string
	SortOrder    int
	Pricing      models.Pricing
	Availability models.Availability
	Restrictions models.Restrictions
	Benefits     []string
	CustomFields []models.TicketCustomField
}

// Create validates required fields (accumulating violations), applies the
// defaulting and derivation rules and persists the ticket type.
func (s *TicketService) Create(ctx context.Context, eventID uuid.UUID, in TicketInput) (*models.TicketType, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", eventID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if exists == 0 {
		return nil, ErrEventNotFound
	}

	var violations []string
	if in.Name == "" {
		violations = append(violations, "name is required")
	}
	if in.Pricing.BasePrice == 0 {
		violations = append(violations, "pricing.basePrice is required")
	}
	if in.Availability.TotalQuantity == 0 {
		violations = append(violations, "availability.totalQuantity is required")
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Errors: violations}
	}

	in.Pricing.Normalize()
	in.Availability.Normalize()
	in.Restrictions.Normalize()

	category := in.Category
	if category == "" {
		category = models.CategoryGeneral
	}
	status := in.Status
	if status == "" {
		status = models.TicketActive
	}

	ticket := models.TicketType{
		ID:           uuid.New(),
		EventID:      eventID,
		Name:         in.Name,
		Description:  in.Description,
		Category:     category,
		Pricing:      datatypes.NewJSONType(in.Pricing),
		Availability: datatypes.NewJSONType(in.Availability),
		Restrictions: datatypes.NewJSONType(in.Restrictions),
		Benefits:     in.Benefits,
		CustomFields: in.CustomFields,
		Status:       status,
		SortOrder:    in.SortOrder,
	}

	if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
		// the primary key is the only unique index on ticket types
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateError{Field: "id", Value: ticket.ID.String()}
		}
		return nil, fmt.Errorf("failed to create ticket type: %w", err)
	}
	return &ticket, nil
}

// TicketUpdate is a partial update. Scalar fields apply only when non-zero:
// an explicit empty string or zero is treated the same as absent. Sub-objects
// replace-and-rederive wholesale when supplied, never merge field-by-field.
type TicketUpdate struct {
	Name         string
	Description  string
	Category     string
	Status       string
	SortOrder    int
	Pricing      *models.Pricing
	Availability *models.Availability
	Restrictions *models.Restrictions
	Benefits     *[]string
	CustomFields *[]models.TicketCustomField
}

func (s *TicketService) Update(ctx context.Context, eventID, ticketID uuid.UUID, upd TicketUpdate) (*models.TicketType, error) {
	var ticket models.TicketType
	err := s.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", ticketID, eventID).
		First(&ticket).Error
	if err != nil {
		return nil, ErrTicketNotFound
	}

	if upd.Name != "" {
		ticket.Name = upd.Name
	}
	if upd.Description != "" {
		ticket.Description = upd.Description
	}
	if upd.Category != "" {
		ticket.Category = upd.Category
	}
	if upd.Status != "" {
		ticket.Status = upd.Status
	}
	if upd.SortOrder != 0 {
		ticket.SortOrder = upd.SortOrder
	}

	if upd.Pricing != nil {
		upd.Pricing.Normalize()
		ticket.Pricing = datatypes.NewJSONType(*upd.Pricing)
	}
	if upd.Availability != nil {
		upd.Availability.Normalize()
		ticket.Availability = datatypes.NewJSONType(*upd.Availability)
	}
	if upd.Restrictions != nil {
		upd.Restrictions.Normalize()
		ticket.Restrictions = datatypes.NewJSONType(*upd.Restrictions)
	}
	if upd.Benefits != nil {
		ticket.Benefits = *upd.Benefits
	}
	if upd.CustomFields != nil {
		ticket.CustomFields = *upd.CustomFields
	}

	if err := s.db.WithContext(ctx).Save(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket type: %w", err)
	}
	return &ticket, nil
}

// SoftDelete cancels the ticket type. Unlike event deletion there is no
// already-cancelled guard: cancelling twice succeeds both times.
func (s *TicketService) SoftDelete(ctx context.Context, eventID, ticketID uuid.UUID) (*models.TicketType, error) {
	var ticket models.TicketType
	err := s.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", ticketID, eventID).
		First(&ticket).Error
	if err != nil {
		return nil, ErrTicketNotFound
	}

	ticket.Status = models.TicketCancelled
	if err := s.db.WithContext(ctx).Save(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel ticket type: %w", err)
	}
	return &ticket, nil
}
