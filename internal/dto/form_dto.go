package dto

import "github.com/ozanyldz/stagepass/internal/models"

type FormCreateRequest struct {
	EventID     string              `json:"eventId"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Fields      []models.FormField  `json:"fields"`
	Settings    models.FormSettings `json:"settings"`
}

type FormUpdateRequest struct {
	Name        *string              `json:"name"`
	Type        *string              `json:"type"`
	Description *string              `json:"description"`
	Status      *string              `json:"status"`
	Fields      *[]models.FormField  `json:"fields"`
	Settings    *models.FormSettings `json:"settings"`
}
