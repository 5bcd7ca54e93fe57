package dto

import (
	"time"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating a new assignment.
type AssignmentCreateRequest struct {
	ClassID      *uint   `json:"class_id" validate:"omitempty,gt=0"`
	Title        string  `json:"title" validate:"required,min=3,max=255"`
	Description  string  `json:"description" validate:"max=4000"`
	Requirements string  `json:"requirements" validate:"max=4000"`
	Technique    string  `json:"technique" validate:"required,oneof=zero-shot few-shot chain-thought role-play structured"`
	DueDate      *string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// AssignmentUpdateRequest describes the payload for toggling an assignment.
type AssignmentUpdateRequest struct {
	IsActive *bool `json:"is_active"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID           uint       `json:"id"`
	ClassID      *uint      `json:"class_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Technique    string     `json:"technique"`
	DueDate      *time.Time `json:"due_date"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           model.ID,
		ClassID:      model.ClassID,
		Title:        model.Title,
		Description:  model.Description,
		Requirements: model.Requirements,
		Technique:    model.Technique,
		DueDate:      model.DueDate,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
