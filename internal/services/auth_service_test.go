package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ozanyldz/stagepass/internal/models"
)

func TestRegisterCreatesPendingUserAndOrganizer(t *testing.T) {
	svc, mailer, db := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	var userCount, organizerCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Organizer{}).Count(&organizerCount).Error)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, organizerCount)

	assert.Equal(t, models.StatusPending, user.Status)
	assert.True(t, user.HasRole(models.RoleOrganizer))
	assert.False(t, user.Auth.Data().EmailVerified)
	assert.NotEqual(t, "s3cret-pass", user.Auth.Data().PasswordHash)

	var organizer models.Organizer
	require.NoError(t, db.First(&organizer, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.StatusPending, organizer.Status)
	assert.Equal(t, "analytical-events", organizer.Slug)
	assert.Equal(t, models.VerificationPending, organizer.Verification.Data().Status)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@example.com", mailer.sent[0].to)
	assert.Len(t, mailer.sent[0].code, 6)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, mailer, _ := newAuthEnv(t)

	in := validRegistration("ada@example.com")
	in.City = ""
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, mailer.sent)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	in := validRegistration("ada@example.com")
	in.OrganizationName = "Another Org"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestVerifyEmailMarksVerifiedButLeavesStatusPending(t *testing.T) {
	svc, mailer, db := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	token, err := svc.VerifyEmail(ctx, "ada@example.com", mailer.lastCode(t))
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "ada@example.com").Error)
	assert.True(t, user.Auth.Data().EmailVerified)
	assert.Equal(t, models.StatusPending, user.Status)
}

func TestVerifyEmailCodeIsSingleUse(t *testing.T) {
	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	code := mailer.lastCode(t)
	_, err = svc.VerifyEmail(ctx, "ada@example.com", code)
	require.NoError(t, err)

	_, err = svc.VerifyEmail(ctx, "ada@example.com", code)
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPasswordIssuesNoOTP(t *testing.T) {
	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)
	mailer.sent = nil

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, mailer.sent)
}

func TestLoginThenVerifyLoginOTP(t *testing.T) {
	svc, mailer, db := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	user, err := svc.Login(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	token, err := svc.VerifyLoginOTP(ctx, "ada@example.com", mailer.lastCode(t))
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "email = ?", "ada@example.com").Error)
	auth := reloaded.Auth.Data()
	assert.Equal(t, 1, auth.LoginCount)
	require.NotNil(t, auth.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *auth.LastLogin, time.Minute)
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))
	code := mailer.lastCode(t)

	require.NoError(t, svc.ResetPassword(ctx, "ada@example.com", code, "new-pass-123"))

	_, err = svc.Login(ctx, "ada@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ada@example.com", "new-pass-123")
	assert.NoError(t, err)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, mailer, _ := newAuthEnv(t)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, mailer.sent)
}

func TestUploadKYCAppendsDocuments(t *testing.T) {
	svc, _, db := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration("ada@example.com"))
	require.NoError(t, err)

	docs, err := svc.UploadKYC(ctx, user.ID, []string{"http://cdn/doc1.pdf", "http://cdn/doc2.pdf"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "kyc", docs[0].Type)

	var organizer models.Organizer
	require.NoError(t, db.First(&organizer, "user_id = ?", user.ID).Error)
	assert.Len(t, organizer.Verification.Data().Documents, 2)
	// status untouched; review happens out of band
	assert.Equal(t, models.VerificationPending, organizer.Verification.Data().Status)
}

func TestUploadKYCUnknownUser(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.UploadKYC(context.Background(), uuid.New(), []string{"http://cdn/doc.pdf"})
	assert.ErrorIs(t, err, ErrOrganizerNotFound)
}

func TestSignTokenRoundTrip(t *testing.T) {
	user := &models.User{
		ID:    uuid.New(),
		Roles: datatypes.JSONSlice[string]{models.RoleOrganizer},
	}

	signed, err := signToken("secret", time.Hour, user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])

	roles, ok := claims["roles"].([]interface{})
	require.True(t, ok)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleOrganizer, roles[0])
}

func TestExpiredTokenRejected(t *testing.T) {
	user := &models.User{ID: uuid.New()}

	signed, err := signToken("secret", -time.Minute, user)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
