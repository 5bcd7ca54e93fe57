package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
)

// ErrAssignmentNotFound indicates an assignment could not be found.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrInvalidDueDate indicates a due date that does not parse as RFC 3339.
var ErrInvalidDueDate = errors.New("invalid due date")

// AssignmentService orchestrates assignment workflows.
type AssignmentService interface {
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	ListActive(ctx context.Context, classID *uint) ([]dto.AssignmentResponse, error)
	Default(ctx context.Context) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	classes     repository.ClassRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, classRepo repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignmentRepo,
		classes:     classRepo,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if payload.ClassID != nil {
		if _, err := s.classes.GetByID(ctx, *payload.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AssignmentResponse{}, ErrClassNotFound
			}
			return dto.AssignmentResponse{}, err
		}
	}

	var dueDate *time.Time
	if payload.DueDate != nil {
		parsed, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
		}
		dueDate = &parsed
	}

	assignment := models.Assignment{
		ClassID:      payload.ClassID,
		Title:        s.sanitizer.Sanitize(payload.Title),
		Description:  s.sanitizer.Sanitize(payload.Description),
		Requirements: s.sanitizer.Sanitize(payload.Requirements),
		Technique:    payload.Technique,
		DueDate:      dueDate,
		IsActive:     true,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Str("technique", assignment.Technique).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) ListActive(ctx context.Context, classID *uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListActive(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

// Default returns the implicit assignment for single-class deployments: the
// oldest active row, as a zero-or-one element list.
func (s *assignmentService) Default(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignment, err := s.assignments.OldestActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.AssignmentResponse{}, nil
		}
		return nil, err
	}

	return []dto.AssignmentResponse{dto.NewAssignmentResponse(assignment)}, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if payload.IsActive != nil {
		assignment.IsActive = *payload.IsActive
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Bool("is_active", assignment.IsActive).Msg("assignment updated")

	return dto.NewAssignmentResponse(assignment), nil
}
