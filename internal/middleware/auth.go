package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/config"
	"github.com/ozanyldz/stagepass/internal/dto"
	"github.com/ozanyldz/stagepass/internal/models"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// ActiveUser resolves the token subject to a user row and requires the
// account to be active. Runs after JWTProtected, which leaves the parsed
// token in c.Locals("user").
func ActiveUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil || user.Status != models.StatusActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized or inactive user",
			})
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by ActiveUser.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

// CurrentOrganizer returns the organizer stored by RequireRoles when the
// organizer role was required.
func CurrentOrganizer(c *fiber.Ctx) (*models.Organizer, error) {
	organizer, ok := c.Locals("currentOrganizer").(*models.Organizer)
	if !ok || organizer == nil {
		return nil, errors.New("no organizer in context")
	}
	return organizer, nil
}
