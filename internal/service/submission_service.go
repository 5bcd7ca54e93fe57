package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/events"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/internal/utils"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrAssignmentInactive indicates the target assignment no longer accepts submissions.
var ErrAssignmentInactive = errors.New("assignment is not active")

const submissionCodeAttempts = 5

// The API stores prompt_data as an opaque blob the frontend owns; this
// schema only drives an advisory warning when a client sends an unexpected
// shape, it never rejects.
var promptDataSchema = jsonschema.MustCompileString("prompt_data.json", `{
	"type": "object",
	"properties": {
		"technique": {"type": "string"},
		"raw_prompt": {"type": "string"},
		"enhanced_prompt": {"type": "string"},
		"parameters": {"type": "object"},
		"reflection": {"type": "string"}
	}
}`)

// SubmissionService orchestrates submission workflows.
type SubmissionService interface {
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error)
	Reveal(ctx context.Context, id uint) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	publisher   events.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assignmentRepo repository.AssignmentRepository, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assignments: assignmentRepo,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		publisher:   publisher,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if !assignment.IsActive || assignment.IsPastDue(s.now()) {
		return dto.SubmissionResponse{}, ErrAssignmentInactive
	}

	s.warnOnUnexpectedPromptData(payload.PromptData)

	submission := models.Submission{
		AssignmentID: payload.AssignmentID,
		StudentName:  s.sanitizer.Sanitize(payload.StudentName),
		StudentEmail: s.sanitizer.Sanitize(payload.StudentEmail),
		PromptData:   datatypes.JSON(payload.PromptData),
		ImageURL:     payload.ImageURL,
	}

	for attempt := 0; attempt < submissionCodeAttempts; attempt++ {
		submission.SubmissionCode = utils.NewSubmissionCode()

		err := s.submissions.Create(ctx, &submission)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.SubmissionResponse{}, err
		}
		if attempt == submissionCodeAttempts-1 {
			return dto.SubmissionResponse{}, err
		}
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("assignment_id", submission.AssignmentID).
		Str("submission_code", submission.SubmissionCode).
		Msg("submission created")

	if s.publisher != nil {
		s.publisher.Publish(events.Event{
			Type:         events.TypeSubmissionCreated,
			AssignmentID: submission.AssignmentID,
			SubmissionID: submission.ID,
			At:           s.now(),
		})
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

// Reveal flips the anonymity flag; revealing twice is a no-op.
func (s *submissionService) Reveal(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.Reveal(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", id).Msg("submission revealed")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) warnOnUnexpectedPromptData(raw json.RawMessage) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn().Err(err).Msg("prompt_data is not valid json")
		return
	}

	if err := promptDataSchema.Validate(decoded); err != nil {
		s.logger.Warn().Err(err).Msg("prompt_data has unexpected shape")
	}
}
