package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/models"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Organizer{}, &models.Event{},
		&models.TicketType{}, &models.CustomForm{},
	))
	return db
}

func seedEventRow(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()

	event := models.Event{
		ID:          uuid.New(),
		OrganizerID: uuid.New(),
		Title:       "Handler Test Event",
		Slug:        "handler-test-event-" + uuid.NewString(),
		Status:      models.EventDraft,
	}
	require.NoError(t, db.Create(&event).Error)
	return &event
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}
