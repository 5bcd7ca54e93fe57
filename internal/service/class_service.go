package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/internal/utils"
)

// ErrClassNotFound indicates a class could not be found.
var ErrClassNotFound = errors.New("class not found")

// ErrClassCodeConflict indicates no unique class code could be minted.
var ErrClassCodeConflict = errors.New("class code conflict")

const (
	classCodeLength   = 6
	classCodeAttempts = 5
)

// ClassService orchestrates class workflows.
type ClassService interface {
	Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	GetByCode(ctx context.Context, code string) (dto.ClassResponse, error)
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	classes   repository.ClassRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewClassService constructs a ClassService instance.
func NewClassService(classRepo repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		classes:   classRepo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		Name:           s.sanitizer.Sanitize(payload.Name),
		Description:    s.sanitizer.Sanitize(payload.Description),
		InstructorName: s.sanitizer.Sanitize(payload.InstructorName),
	}

	// Random codes collide essentially never, but the column is UNIQUE so the
	// insert can still lose; retry with a fresh code before giving up.
	for attempt := 0; attempt < classCodeAttempts; attempt++ {
		class.ClassCode = utils.NewClassCode(classCodeLength)

		err := s.classes.Create(ctx, &class)
		if err == nil {
			s.logger.Info().Uint("class_id", class.ID).Str("class_code", class.ClassCode).Msg("class created")
			return dto.NewClassResponse(class), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ClassResponse{}, err
		}
	}

	return dto.ClassResponse{}, ErrClassCodeConflict
}

func (s *classService) GetByCode(ctx context.Context, code string) (dto.ClassResponse, error) {
	class, err := s.classes.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	s.logger.Info().Uint("class_id", id).Msg("class deleted with cascade")

	return nil
}
