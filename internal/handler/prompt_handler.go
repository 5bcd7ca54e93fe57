package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/service"
	"github.com/noah-isme/promptclass-api/internal/utils"
)

// PromptHandler serves prompt scoring and technique metadata.
type PromptHandler struct {
	service service.PromptService
	logger  zerolog.Logger
}

// NewPromptHandler builds a prompt handler instance.
func NewPromptHandler(service service.PromptService, logger zerolog.Logger) *PromptHandler {
	return &PromptHandler{
		service: service,
		logger:  logger.With().Str("component", "prompt_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *PromptHandler) Register(router fiber.Router) {
	router.Post("/prompts/score", h.score)
	router.Get("/techniques", h.listTechniques)
}

func (h *PromptHandler) score(c *fiber.Ctx) error {
	var payload dto.PromptScoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Score(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "prompt scored", result)
}

func (h *PromptHandler) listTechniques(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "techniques retrieved", h.service.Techniques())
}
