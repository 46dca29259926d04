package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanyldz/stagepass/internal/dto"
	"github.com/ozanyldz/stagepass/internal/forms"
	"github.com/ozanyldz/stagepass/internal/middleware"
	"github.com/ozanyldz/stagepass/internal/models"
	"github.com/ozanyldz/stagepass/internal/services"
	"github.com/ozanyldz/stagepass/internal/storage"
)

type EventHandler struct {
	eventService *services.EventService
	store        storage.Store
}

func NewEventHandler(eventService *services.EventService, store storage.Store) *EventHandler {
	return &EventHandler{eventService: eventService, store: store}
}

// Create accepts a multipart form. Structured fields arrive as JSON strings
// and go through the lenient parser: a malformed block falls back to its
// zero value instead of failing the whole request.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	title := c.FormValue("title")
	rawDates := c.FormValue("dates")
	if title == "" || rawDates == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title and dates are required.",
		})
	}

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	in := services.EventInput{
		Title:            title,
		Slug:             c.FormValue("slug"),
		Description:      c.FormValue("description"),
		ShortDescription: c.FormValue("shortDescription"),
		Status:           c.FormValue("status"),
		Dates:            forms.ParseOr(rawDates, models.EventDates{}),
		Location:         forms.ParseOr(c.FormValue("location"), models.EventLocation{}),
		Categories:       forms.ParseOr(c.FormValue("categories"), []string(nil)),
		Tags:             forms.ParseOr(c.FormValue("tags"), []string(nil)),
		AgeRestrictions:  forms.ParseOr(c.FormValue("ageRestrictions"), models.AgeRestrictions{}),
		Settings:         forms.ParseOr(c.FormValue("settings"), models.EventSettings{}),
		SEO:              forms.ParseOr(c.FormValue("seo"), models.SEO{}),
		Stats:            forms.ParseOr(c.FormValue("stats"), models.EventStats{}),
	}

	if mf, err := c.MultipartForm(); err == nil {
		in.Images, err = h.saveImages(mf)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to store uploaded file",
			})
		}
	}

	event, err := h.eventService.Create(c.UserContext(), user, in)
	if err != nil {
		var de *services.DuplicateError
		switch {
		case errors.Is(err, services.ErrUserInactive):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "User account is not active.",
			})
		case errors.Is(err, services.ErrOrganizerInactive):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Organizer is not active.",
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
		"message": "Event created successfully.",
		"event":   event,
	})
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Event not found or not authorized.",
		})
	}

	organizer, err := middleware.CurrentOrganizer(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Organizer is not active.",
		})
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form data",
		})
	}

	var upd services.EventUpdate
	if v, ok := formField(mf, "title"); ok {
		upd.Title = &v
	}
	if v, ok := formField(mf, "slug"); ok {
		upd.Slug = &v
	}
	if v, ok := formField(mf, "description"); ok {
		upd.Description = &v
	}
	if v, ok := formField(mf, "shortDescription"); ok {
		upd.ShortDescription = &v
	}
	if v, ok := formField(mf, "status"); ok {
		upd.Status = &v
	}
	if v, ok := formField(mf, "dates"); ok {
		upd.Dates = forms.ParseOrNil[models.EventDates](v)
	}
	if v, ok := formField(mf, "location"); ok {
		upd.Location = forms.ParseOrNil[models.EventLocation](v)
	}
	if v, ok := formField(mf, "categories"); ok {
		upd.Categories = forms.ParseOrNil[[]string](v)
	}
	if v, ok := formField(mf, "tags"); ok {
		upd.Tags = forms.ParseOrNil[[]string](v)
	}
	if v, ok := formField(mf, "ageRestrictions"); ok {
		upd.AgeRestrictions = forms.ParseOrNil[models.AgeRestrictions](v)
	}
	if v, ok := formField(mf, "settings"); ok {
		upd.Settings = forms.ParseOrNil[models.EventSettings](v)
	}
	if v, ok := formField(mf, "seo"); ok {
		upd.SEO = forms.ParseOrNil[models.SEO](v)
	}

	upd.Images, err = h.saveImages(mf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store uploaded file",
		})
	}

	event, err := h.eventService.Update(c.UserContext(), organizer.ID, eventID, upd)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found or not authorized.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

// Delete soft-deletes via the status route; "deleted" is terminal.
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Event not found or not authorized.",
		})
	}

	organizer, err := middleware.CurrentOrganizer(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Organizer is not active.",
		})
	}

	event, err := h.eventService.SoftDelete(c.UserContext(), organizer.ID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventDeleted):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Event already deleted",
			})
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found or not authorized.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Event deleted successfully.",
		"event":   event,
	})
}

// saveImages stores every uploaded image in order; the first one becomes
// the primary image.
func (h *EventHandler) saveImages(mf *multipart.Form) ([]models.EventImage, error) {
	files := mf.File["images"]
	if len(files) == 0 {
		return nil, nil
	}

	images := make([]models.EventImage, 0, len(files))
	for i, fh := range files {
		url, err := saveUpload(h.store, fh, "image")
		if err != nil {
			return nil, err
		}
		images = append(images, models.EventImage{
			URL:       url,
			Alt:       fh.Filename,
			IsPrimary: i == 0,
		})
	}
	return images, nil
}
