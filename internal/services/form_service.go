package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/models"
)

var ErrFormNotFound = errors.New("form not found")

type FormService struct {
	db *gorm.DB
}

func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

type FormInput struct {
	EventID     uuid.UUID
	OrganizerID uuid.UUID
	Name        string
	Type        string
	Description string
	Status      string
	Fields      []models.FormField
	Settings    models.FormSettings
}

func (s *FormService) Create(ctx context.Context, in FormInput) (*models.CustomForm, error) {
	status := in.Status
	if status == "" {
		status = models.FormActive
	}

	form := models.CustomForm{
		ID:          uuid.New(),
		EventID:     in.EventID,
		OrganizerID: in.OrganizerID,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Fields:      in.Fields,
		Settings:    datatypes.NewJSONType(in.Settings),
		Status:      status,
	}
	if err := s.db.WithContext(ctx).Create(&form).Error; err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}
	return &form, nil
}

type FormUpdate struct {
	Name        *string
	Type        *string
	Description *string
	Status      *string
	Fields      *[]models.FormField
	Settings    *models.FormSettings
}

func (s *FormService) Update(ctx context.Context, formID uuid.UUID, upd FormUpdate) (*models.CustomForm, error) {
	var form models.CustomForm
	if err := s.db.WithContext(ctx).First(&form, "id = ?", formID).Error; err != nil {
		return nil, ErrFormNotFound
	}

	if upd.Name != nil {
		form.Name = *upd.Name
	}
	if upd.Type != nil {
		form.Type = *upd.Type
	}
	if upd.Description != nil {
		form.Description = *upd.Description
	}
	if upd.Status != nil {
		form.Status = *upd.Status
	}
	if upd.Fields != nil {
		form.Fields = *upd.Fields
	}
	if upd.Settings != nil {
		form.Settings = datatypes.NewJSONType(*upd.Settings)
	}

	if err := s.db.WithContext(ctx).Save(&form).Error; err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}
	return &form, nil
}

// Delete removes the form permanently; custom forms are the only aggregate
// without a soft-delete status.
func (s *FormService) Delete(ctx context.Context, formID uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.CustomForm{}, "id = ?", formID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete form: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFormNotFound
	}
	return nil
}
