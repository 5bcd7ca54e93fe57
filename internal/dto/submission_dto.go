package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// SubmissionCreateRequest describes the payload for submitting an entry.
// PromptData is an opaque document shaped by the frontend builders.
type SubmissionCreateRequest struct {
	AssignmentID uint            `json:"assignment_id" validate:"required,gt=0"`
	StudentName  string          `json:"student_name" validate:"required,min=2,max=255"`
	StudentEmail string          `json:"student_email" validate:"omitempty,email"`
	PromptData   json.RawMessage `json:"prompt_data" validate:"required"`
	ImageURL     string          `json:"image_url" validate:"required,url,max=1024"`
}

// SubmissionResponse is the serialized representation returned to API clients.
type SubmissionResponse struct {
	ID             uint            `json:"id"`
	AssignmentID   uint            `json:"assignment_id"`
	StudentName    string          `json:"student_name"`
	StudentEmail   string          `json:"student_email"`
	PromptData     json.RawMessage `json:"prompt_data"`
	ImageURL       string          `json:"image_url"`
	SubmissionCode string          `json:"submission_code"`
	Votes          int             `json:"votes"`
	IsRevealed     bool            `json:"is_revealed"`
	SubmittedAt    time.Time       `json:"submitted_at"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:             model.ID,
		AssignmentID:   model.AssignmentID,
		StudentName:    model.StudentName,
		StudentEmail:   model.StudentEmail,
		PromptData:     json.RawMessage(model.PromptData),
		ImageURL:       model.ImageURL,
		SubmissionCode: model.SubmissionCode,
		Votes:          model.Votes,
		IsRevealed:     model.IsRevealed,
		SubmittedAt:    model.CreatedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
