package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/dto"
	"github.com/ozanyldz/stagepass/internal/models"
)

// RequireRoles passes when the caller holds at least one of the given
// roles. When "organizer" is among them it additionally loads the
// organizer profile and requires it to be active, leaving it in
// c.Locals("currentOrganizer") for the handlers downstream.
func RequireRoles(db *gorm.DB, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !hasAny(user.Roles, roles) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied for this role.",
			})
		}

		if hasAny(roles, []string{models.RoleOrganizer}) {
			var organizer models.Organizer
			if err := db.First(&organizer, "user_id = ?", user.ID).Error; err != nil || organizer.Status != models.StatusActive {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Organizer is not active.",
				})
			}
			c.Locals("currentOrganizer", &organizer)
		}

		return c.Next()
	}
}

func hasAny(have []string, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
