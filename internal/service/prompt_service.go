package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/pkg/ai"
)

const scoreTimeout = 5 * time.Second

// PromptService grades prompts and describes the available techniques.
type PromptService interface {
	Score(ctx context.Context, payload dto.PromptScoreRequest) (dto.PromptScoreResponse, error)
	Techniques() []dto.TechniqueResponse
}

type promptService struct {
	remote    ai.Scorer
	fallback  ai.Scorer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPromptService constructs a PromptService. The remote scorer may be nil,
// in which case every request is graded by the local heuristic.
func NewPromptService(remote ai.Scorer, validate *validator.Validate, logger zerolog.Logger) PromptService {
	return &promptService{
		remote:    remote,
		fallback:  ai.NewHeuristicScorer(),
		validator: validate,
		logger:    logger.With().Str("component", "prompt_service").Logger(),
	}
}

// Score grades a prompt, degrading gracefully: any remote failure falls back
// to the local heuristic instead of surfacing an error to the student.
func (s *promptService) Score(ctx context.Context, payload dto.PromptScoreRequest) (dto.PromptScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PromptScoreResponse{}, err
	}

	input := ai.ScoreInput{Technique: payload.Technique, Prompt: payload.Prompt}

	if s.remote != nil {
		scoreCtx, cancel := context.WithTimeout(ctx, scoreTimeout)
		defer cancel()

		result, err := s.remote.Score(scoreCtx, input)
		if err == nil {
			return dto.PromptScoreResponse{Score: result.Score, Feedback: result.Feedback, Source: "model"}, nil
		}

		s.logger.Warn().Err(err).Msg("remote scorer failed, using heuristic")
	}

	result, err := s.fallback.Score(ctx, input)
	if err != nil {
		return dto.PromptScoreResponse{}, err
	}

	return dto.PromptScoreResponse{Score: result.Score, Feedback: result.Feedback, Source: "heuristic"}, nil
}

// Techniques lists the builder metadata for the five prompting techniques.
func (s *promptService) Techniques() []dto.TechniqueResponse {
	return []dto.TechniqueResponse{
		{
			ID:       models.TechniqueZeroShot,
			Label:    "Zero-Shot",
			Template: "{subject}, {style}, {mood}, {details}",
			Hint:     "Describe exactly what you want in one direct prompt.",
		},
		{
			ID:       models.TechniqueFewShot,
			Label:    "Few-Shot",
			Template: "Examples: {example1}; {example2}. Now create: {subject}",
			Hint:     "Show the model a couple of examples before your ask.",
		},
		{
			ID:       models.TechniqueChainThought,
			Label:    "Chain-of-Thought",
			Template: "First {step1}, then {step2}, finally {step3}",
			Hint:     "Walk through the scene step by step.",
		},
		{
			ID:       models.TechniqueRolePlay,
			Label:    "Role-Play",
			Template: "You are {role}. Create {subject} from that perspective",
			Hint:     "Give the model a persona to work from.",
		},
		{
			ID:       models.TechniqueStructured,
			Label:    "Structured",
			Template: "subject: {subject} | style: {style} | mood: {mood} | format: {format}",
			Hint:     "Lay the prompt out as labelled fields.",
		},
	}
}
