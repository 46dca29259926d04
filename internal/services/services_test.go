package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/config"
	"github.com/ozanyldz/stagepass/internal/models"
	"github.com/ozanyldz/stagepass/internal/otp"
)

func newTestDB(t *testing.T) *gorm.DB {
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

type sentMail struct {
	to   string
	code string
	name string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to, code, name string) error {
	m.sent = append(m.sent, sentMail{to: to, code: code, name: name})
	return nil
}

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.sent, "expected at least one mail to have been sent")
	return m.sent[len(m.sent)-1].code
}

func newAuthEnv(t *testing.T) (*AuthService, *fakeMailer, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	mailer := &fakeMailer{}
	svc := NewAuthService(db, cfg, otp.NewLedger(rdb, 10*time.Minute), mailer)
	return svc, mailer, db
}

func validRegistration(email string) RegisterInput {
	return RegisterInput{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            email,
		Phone:            "+15550100",
		Password:         "s3cret-pass",
		OrganizationName: "Analytical Events",
		ContactEmail:     "contact@analytical.events",
		ContactPhone:     "+15550101",
		Street:           "12 Engine St",
		City:             "London",
		State:            "LDN",
		Pincode:          "SW1",
		Country:          "UK",
	}
}

// seedOrganizerAccount inserts a user and organizer pair directly, bypassing
// the registration flow, so event and ticket tests can control statuses.
func seedOrganizerAccount(t *testing.T, db *gorm.DB, userStatus, organizerStatus string) (*models.User, *models.Organizer) {
	t.Helper()

	user := models.User{
		ID:     uuid.New(),
		Email:  uuid.NewString() + "@example.com",
		Roles:  datatypes.JSONSlice[string]{models.RoleOrganizer},
		Status: userStatus,
	}
	require.NoError(t, db.Create(&user).Error)

	organizer := models.Organizer{
		ID:               uuid.New(),
		UserID:           user.ID,
		OrganizationName: "Test Org",
		Slug:             "test-org-" + uuid.NewString(),
		Branding:         datatypes.NewJSONType(models.Branding{Logo: "http://cdn/logo.png"}),
		Status:           organizerStatus,
	}
	require.NoError(t, db.Create(&organizer).Error)

	return &user, &organizer
}

func seedEvent(t *testing.T, db *gorm.DB, organizerID uuid.UUID) *models.Event {
	t.Helper()

	event := models.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       "Seeded Event",
		Slug:        "seeded-event-" + uuid.NewString(),
		Status:      models.EventDraft,
	}
	require.NoError(t, db.Create(&event).Error)
	return &event
}
