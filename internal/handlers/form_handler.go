package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanyldz/stagepass/internal/dto"
	"github.com/ozanyldz/stagepass/internal/middleware"
	"github.com/ozanyldz/stagepass/internal/services"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(formService *services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

func (h *FormHandler) Create(c *fiber.Ctx) error {
	var req dto.FormCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.EventID == "" || req.Name == "" || req.Type == "" || len(req.Fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required fields.",
		})
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID format",
		})
	}

	organizer, err := middleware.CurrentOrganizer(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Organizer is not active.",
		})
	}

	form, err := h.formService.Create(c.UserContext(), services.FormInput{
		EventID:     eventID,
		OrganizerID: organizer.ID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      req.Status,
		Fields:      req.Fields,
		Settings:    req.Settings,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Form created successfully.",
		"form":    form,
	})
}

func (h *FormHandler) Update(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Form not found",
		})
	}

	var req dto.FormUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	form, err := h.formService.Update(c.UserContext(), formID, services.FormUpdate{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      req.Status,
		Fields:      req.Fields,
		Settings:    req.Settings,
	})
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Form not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Form updated successfully.",
		"form":    form,
	})
}

func (h *FormHandler) Delete(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Form not found",
		})
	}

	if err := h.formService.Delete(c.UserContext(), formID); err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Form not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Form deleted successfully."})
}
