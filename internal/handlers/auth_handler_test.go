package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozanyldz/stagepass/internal/config"
	"github.com/ozanyldz/stagepass/internal/models"
	"github.com/ozanyldz/stagepass/internal/otp"
	"github.com/ozanyldz/stagepass/internal/services"
	"github.com/ozanyldz/stagepass/internal/storage"
)

type noopMailer struct{}

func (noopMailer) Send(to, code, name string) error { return nil }

func TestUploadKYCRespondsOK(t *testing.T) {
	db := newHandlerDB(t)

	user := models.User{ID: uuid.New(), Email: "kyc@example.com", Status: models.StatusPending}
	require.NoError(t, db.Create(&user).Error)
	organizer := models.Organizer{
		ID:               uuid.New(),
		UserID:           user.ID,
		OrganizationName: "KYC Org",
		Slug:             "kyc-org-" + uuid.NewString(),
		Status:           models.StatusPending,
	}
	require.NoError(t, db.Create(&organizer).Error)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, BcryptCost: 4}
	authService := services.NewAuthService(db, cfg, otp.NewLedger(rdb, 10*time.Minute), noopMailer{})
	store, err := storage.NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	h := NewAuthHandler(authService, store)
	app := fiber.New()
	app.Post("/auth/organizer/kyc", h.UploadKYC)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("userId", user.ID.String()))
	fw, err := w.CreateFormFile("documents", "passport.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/auth/organizer/kyc", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Message   string                        `json:"message"`
		Documents []models.VerificationDocument `json:"documents"`
	}
	decodeJSON(t, resp, &out)
	assert.Equal(t, "KYC documents uploaded successfully.", out.Message)
	require.Len(t, out.Documents, 1)
	assert.Equal(t, "kyc", out.Documents[0].Type)
}
