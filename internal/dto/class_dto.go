package dto

import (
	"time"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// ClassCreateRequest describes the payload for creating a new class.
type ClassCreateRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Description    string `json:"description" validate:"max=2000"`
	InstructorName string `json:"instructor_name" validate:"required,min=2,max=255"`
}

// ClassResponse is the serialized representation returned to API clients.
type ClassResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	InstructorName string    `json:"instructor_name"`
	ClassCode      string    `json:"class_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewClassResponse converts a model into a DTO.
func NewClassResponse(model models.Class) ClassResponse {
	return ClassResponse{
		ID:             model.ID,
		Name:           model.Name,
		Description:    model.Description,
		InstructorName: model.InstructorName,
		ClassCode:      model.ClassCode,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
