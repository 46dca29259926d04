package dto

import "github.com/google/uuid"

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginPendingResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
	Email   string    `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}
