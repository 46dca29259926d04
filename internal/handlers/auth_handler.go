package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanyldz/stagepass/internal/dto"
	"github.com/ozanyldz/stagepass/internal/otp"
	"github.com/ozanyldz/stagepass/internal/services"
	"github.com/ozanyldz/stagepass/internal/storage"
)

type AuthHandler struct {
	authService *services.AuthService
	store       storage.Store
}

func NewAuthHandler(authService *services.AuthService, store storage.Store) *AuthHandler {
	return &AuthHandler{authService: authService, store: store}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	in := services.RegisterInput{
		FirstName:        c.FormValue("firstName"),
		LastName:         c.FormValue("lastName"),
		Email:            c.FormValue("email"),
		Phone:            c.FormValue("phone"),
		Password:         c.FormValue("password"),
		DateOfBirth:      c.FormValue("dateOfBirth"),
		OrganizationName: c.FormValue("organizationName"),
		Description:      c.FormValue("description"),
		ContactEmail:     c.FormValue("contactEmail"),
		ContactPhone:     c.FormValue("contactPhone"),
		Street:           c.FormValue("street"),
		City:             c.FormValue("city"),
		State:            c.FormValue("state"),
		Pincode:          c.FormValue("pincode"),
		Country:          c.FormValue("country"),
		PrimaryColor:     c.FormValue("primaryColor"),
		SecondaryColor:   c.FormValue("secondaryColor"),
	}

	for field, dst := range map[string]*string{
		"avatar": &in.AvatarURL,
		"logo":   &in.LogoURL,
		"banner": &in.BannerURL,
	} {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		url, err := saveUpload(h.store, fh, field)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to store uploaded file",
			})
		}
		*dst = url
	}

	user, err := h.authService.Register(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Missing required fields.",
			})
		}
		if errors.Is(err, services.ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already exists.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.LoginPendingResponse{
		Message: "Registration successful. An OTP has been sent to your email.",
		UserID:  user.ID,
		Email:   user.Email,
	})
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and OTP are required.",
		})
	}

	token, err := h.authService.VerifyEmail(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return h.otpError(c, err)
	}

	return c.JSON(dto.TokenResponse{Message: "Email verified successfully.", Token: token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and password are required.",
		})
	}

	user, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid credentials.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.LoginPendingResponse{
		Message: "OTP sent to your email.",
		UserID:  user.ID,
		Email:   user.Email,
	})
}

func (h *AuthHandler) VerifyLoginOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and OTP are required.",
		})
	}

	token, err := h.authService.VerifyLoginOTP(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return h.otpError(c, err)
	}

	return c.JSON(dto.TokenResponse{Message: "Login successful.", Token: token})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required.",
		})
	}

	if err := h.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No account found with this email.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "OTP sent to your email."})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email, OTP and new password are required.",
		})
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return h.otpError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Password reset successfully."})
}

// UploadKYC accepts verification documents for an organizer. The endpoint is
// open: callers self-identify through the userId form field.
func (h *AuthHandler) UploadKYC(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.FormValue("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID format",
		})
	}

	mf, err := c.MultipartForm()
	if err != nil || len(mf.File["documents"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No documents uploaded.",
		})
	}

	urls := make([]string, 0, len(mf.File["documents"]))
	for _, fh := range mf.File["documents"] {
		url, err := saveUpload(h.store, fh, "document")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to store uploaded file",
			})
		}
		urls = append(urls, url)
	}

	docs, err := h.authService.UploadKYC(c.UserContext(), userID, urls)
	if err != nil {
		if errors.Is(err, services.ErrOrganizerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Organizer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "KYC documents uploaded successfully.",
		"documents": docs,
	})
}

func (h *AuthHandler) otpError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, otp.ErrNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "OTP not found. Please register or request OTP again.",
		})
	case errors.Is(err, otp.ErrCodeMismatch), errors.Is(err, otp.ErrExpired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired OTP.",
		})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
