package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/config"
	"github.com/ozanyldz/stagepass/internal/mail"
	"github.com/ozanyldz/stagepass/internal/models"
	"github.com/ozanyldz/stagepass/internal/otp"
)

var (
	ErrMissingFields      = errors.New("required fields missing")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOrganizerNotFound  = errors.New("organizer not found")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	ledger *otp.Ledger
	mailer mail.Sender
}

func NewAuthService(db *gorm.DB, cfg *config.Config, ledger *otp.Ledger, mailer mail.Sender) *AuthService {
	return &AuthService{db: db, cfg: cfg, ledger: ledger, mailer: mailer}
}

// RegisterInput carries the flat multipart registration form. Asset fields
// hold references already produced by the storage collaborator.
type RegisterInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Password         string
	DateOfBirth      string
	OrganizationName string
	Description      string
	ContactEmail     string
	ContactPhone     string
	Street           string
	City             string
	State            string
	Pincode          string
	Country          string
	PrimaryColor     string
	SecondaryColor   string
	AvatarURL        string
	LogoURL          string
	BannerURL        string
}

func (in *RegisterInput) validate() error {
	required := []string{
		in.FirstName, in.LastName, in.Email, in.Phone, in.Password,
		in.OrganizationName, in.ContactEmail, in.ContactPhone,
		in.Street, in.City, in.State, in.Pincode, in.Country,
	}
	for _, v := range required {
		if v == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// Register creates the identity and the organizer profile (both pending),
// then issues and mails an OTP. The two creates are not wrapped in a
// transaction, matching the store-per-aggregate write model; a failed
// organizer create after a successful user create is surfaced as an error
// without compensation.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.New(),
		Email: in.Email,
		Profile: datatypes.NewJSONType(models.Profile{
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Phone:       in.Phone,
			Avatar:      in.AvatarURL,
			DateOfBirth: parseBirthDate(in.DateOfBirth),
		}),
		Auth: datatypes.NewJSONType(models.AuthInfo{
			Provider:      "email",
			ProviderID:    in.Email,
			PasswordHash:  string(hash),
			EmailVerified: false,
		}),
		Address: datatypes.NewJSONType(models.Address{
			Street: in.Street, City: in.City, State: in.State,
			ZipCode: in.Pincode, Country: in.Country,
		}),
		Roles:  datatypes.JSONSlice[string]{models.RoleOrganizer},
		Status: models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	organizer := models.Organizer{
		ID:               uuid.New(),
		UserID:           user.ID,
		OrganizationName: in.OrganizationName,
		Slug:             slug.Make(in.OrganizationName),
		Description:      in.Description,
		ContactInfo: datatypes.NewJSONType(models.ContactInfo{
			Email: in.ContactEmail,
			Phone: in.ContactPhone,
		}),
		Address: datatypes.NewJSONType(models.Address{
			Street: in.Street, City: in.City, State: in.State,
			ZipCode: in.Pincode, Country: in.Country,
		}),
		Branding: datatypes.NewJSONType(models.Branding{
			Logo:           in.LogoURL,
			Banner:         in.BannerURL,
			PrimaryColor:   in.PrimaryColor,
			SecondaryColor: in.SecondaryColor,
		}),
		Verification: datatypes.NewJSONType(models.Verification{
			Status: models.VerificationPending,
		}),
		Status: models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&organizer).Error; err != nil {
		return nil, fmt.Errorf("failed to create organizer: %w", err)
	}

	if err := s.sendOTP(ctx, user.Email, in.FirstName); err != nil {
		return nil, err
	}

	slog.Info("organizer registered", "email", user.Email, "organizer_slug", organizer.Slug)
	return &user, nil
}

// VerifyEmail checks the registration OTP, marks the email verified and
// returns a session token. The account status is written back as "pending";
// promotion to "active" is owned by an administrative review flow outside
// this service (pending product confirmation, see DESIGN.md).
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (string, error) {
	if err := s.ledger.Verify(ctx, email, code); err != nil {
		return "", err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrUserNotFound
	}

	auth := user.Auth.Data()
	auth.EmailVerified = true
	user.Auth = datatypes.NewJSONType(auth)
	user.Status = models.StatusPending
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.ledger.Consume(ctx, email); err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}

	return s.generateToken(&user)
}

// Login verifies the password and, on success, issues and mails a login OTP.
// Login is always two-phase; no session is created here. A wrong password
// leaves any outstanding OTP untouched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Auth.Data().PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	name := user.Profile.Data().FirstName
	if name == "" {
		name = "User"
	}
	if err := s.sendOTP(ctx, email, name); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyLoginOTP completes the second login phase: it validates the OTP,
// records the login, consumes the code and returns a session token.
func (s *AuthService) VerifyLoginOTP(ctx context.Context, email, code string) (string, error) {
	if err := s.ledger.Verify(ctx, email, code); err != nil {
		return "", err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrUserNotFound
	}

	now := time.Now().UTC()
	auth := user.Auth.Data()
	auth.EmailVerified = true
	auth.LastLogin = &now
	auth.LoginCount++
	user.Auth = datatypes.NewJSONType(auth)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.ledger.Consume(ctx, email); err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}

	return s.generateToken(&user)
}

// ForgotPassword issues and mails a reset OTP for an existing account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	name := user.Profile.Data().FirstName
	if name == "" {
		name = "User"
	}
	return s.sendOTP(ctx, email, name)
}

// ResetPassword validates the OTP and replaces the password hash. Sessions
// issued earlier stay valid until their own expiry; tokens are stateless and
// there is no revocation list.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.ledger.Verify(ctx, email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	auth := user.Auth.Data()
	auth.PasswordHash = string(hash)
	user.Auth = datatypes.NewJSONType(auth)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.ledger.Consume(ctx, email)
}

// UploadKYC appends document references to the organizer's verification
// record. Verification status is left untouched; review happens elsewhere.
func (s *AuthService) UploadKYC(ctx context.Context, userID uuid.UUID, urls []string) ([]models.VerificationDocument, error) {
	var organizer models.Organizer
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&organizer).Error; err != nil {
		return nil, ErrOrganizerNotFound
	}

	now := time.Now().UTC()
	docs := make([]models.VerificationDocument, 0, len(urls))
	for _, u := range urls {
		docs = append(docs, models.VerificationDocument{Type: "kyc", URL: u, UploadedAt: now})
	}

	verification := organizer.Verification.Data()
	verification.Documents = append(verification.Documents, docs...)
	organizer.Verification = datatypes.NewJSONType(verification)
	if err := s.db.WithContext(ctx).Save(&organizer).Error; err != nil {
		return nil, fmt.Errorf("failed to save documents: %w", err)
	}

	return docs, nil
}

func (s *AuthService) sendOTP(ctx context.Context, email, name string) error {
	code, err := s.ledger.Issue(ctx, email)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(email, code, name); err != nil {
		return err
	}
	return nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	return signToken(s.cfg.JWTSecret, s.cfg.JWTExpiry, user)
}

func signToken(secret string, expiry time.Duration, user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"roles": []string(user.Roles),
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseBirthDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
