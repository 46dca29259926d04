package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanyldz/stagepass/internal/dto"
	"github.com/ozanyldz/stagepass/internal/forms"
	"github.com/ozanyldz/stagepass/internal/models"
	"github.com/ozanyldz/stagepass/internal/services"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) Create(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID format",
		})
	}

	var req dto.TicketCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ticket, err := h.ticketService.Create(c.UserContext(), eventID, services.TicketInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Status:       req.Status,
		SortOrder:    req.SortOrder,
		Pricing:      forms.ParseOr(string(req.Pricing), models.Pricing{}),
		Availability: forms.ParseOr(string(req.Availability), models.Availability{}),
		Restrictions: forms.ParseOr(string(req.Restrictions), models.Restrictions{}),
		Benefits:     forms.ParseOr(string(req.Benefits), []string(nil)),
		CustomFields: forms.ParseOr(string(req.CustomFields), []models.TicketCustomField(nil)),
	})
	if err != nil {
		var ve *services.ValidationError
		var de *services.DuplicateError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
				Message: "Validation failed",
				Errors:  ve.Errors,
			})
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		case errors.As(err, &de):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":   "Duplicate entry",
				"duplicate": fiber.Map{de.Field: de.Value},
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Ticket type created successfully.",
		"data":    ticket,
	})
}

func (h *TicketHandler) Update(c *fiber.Ctx) error {
	eventID, ticketID, ok := h.parseIDs(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event or ticket ID format",
		})
	}

	var req dto.TicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ticket, err := h.ticketService.Update(c.UserContext(), eventID, ticketID, services.TicketUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Status:       req.Status,
		SortOrder:    req.SortOrder,
		Pricing:      forms.ParseOrNil[models.Pricing](string(req.Pricing)),
		Availability: forms.ParseOrNil[models.Availability](string(req.Availability)),
		Restrictions: forms.ParseOrNil[models.Restrictions](string(req.Restrictions)),
		Benefits:     forms.ParseOrNil[[]string](string(req.Benefits)),
		CustomFields: forms.ParseOrNil[[]models.TicketCustomField](string(req.CustomFields)),
	})
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ticket type not found for this event.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Ticket type updated successfully.",
		"data":    ticket,
	})
}

func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	eventID, ticketID, ok := h.parseIDs(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event or ticket ID format",
		})
	}

	ticket, err := h.ticketService.SoftDelete(c.UserContext(), eventID, ticketID)
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ticket type not found for this event.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Ticket type cancelled successfully.",
		"data":    ticket,
	})
}

func (h *TicketHandler) parseIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	ticketID, err := uuid.Parse(c.Params("ticketId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return eventID, ticketID, true
}
