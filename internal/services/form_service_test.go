package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozanyldz/stagepass/internal/models"
)

func sampleFields() []models.FormField {
	return []models.FormField{
		{FieldID: "dietary", Type: "select", Label: "Dietary preference", Options: []string{"none", "vegan"}},
		{FieldID: "tshirt", Type: "text", Label: "T-shirt size", Required: true},
	}
}

func TestCreateFormDefaultsToActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)
	_, organizer := seedOrganizerAccount(t, db, models.StatusActive, models.StatusActive)
	event := seedEvent(t, db, organizer.ID)

	form, err := svc.Create(context.Background(), FormInput{
		EventID:     event.ID,
		OrganizerID: organizer.ID,
		Name:        "Attendee Survey",
		Type:        "registration",
		Fields:      sampleFields(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.FormActive, form.Status)
	assert.Len(t, form.Fields, 2)
	assert.Equal(t, event.ID, form.EventID)
	assert.Equal(t, organizer.ID, form.OrganizerID)
}

func TestUpdateFormPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)
	_, organizer := seedOrganizerAccount(t, db, models.StatusActive, models.StatusActive)
	event := seedEvent(t, db, organizer.ID)
	ctx := context.Background()

	form, err := svc.Create(ctx, FormInput{
		EventID:     event.ID,
		OrganizerID: organizer.ID,
		Name:        "Survey",
		Type:        "registration",
		Fields:      sampleFields(),
	})
	require.NoError(t, err)

	newName := "Renamed Survey"
	newFields := sampleFields()[:1]
	updated, err := svc.Update(ctx, form.ID, FormUpdate{
		Name:   &newName,
		Fields: &newFields,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Survey", updated.Name)
	assert.Len(t, updated.Fields, 1)
	assert.Equal(t, "registration", updated.Type)
}

func TestUpdateFormNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	name := "x"
	_, err := svc.Update(context.Background(), uuid.New(), FormUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestDeleteFormIsHard(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)
	_, organizer := seedOrganizerAccount(t, db, models.StatusActive, models.StatusActive)
	event := seedEvent(t, db, organizer.ID)
	ctx := context.Background()

	form, err := svc.Create(ctx, FormInput{
		EventID:     event.ID,
		OrganizerID: organizer.ID,
		Name:        "Survey",
		Type:        "registration",
		Fields:      sampleFields(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, form.ID))

	var count int64
	require.NoError(t, db.Model(&models.CustomForm{}).Where("id = ?", form.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, svc.Delete(ctx, form.ID), ErrFormNotFound)
}
