package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/service"
	"github.com/noah-isme/promptclass-api/internal/utils"
)

// VoteHandler manages the anonymous voting endpoints.
type VoteHandler struct {
	service service.VoteService
	logger  zerolog.Logger
}

// NewVoteHandler builds a vote handler instance.
func NewVoteHandler(service service.VoteService, logger zerolog.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  logger.With().Str("component", "vote_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *VoteHandler) Register(router fiber.Router) {
	router.Post("/submissions/:id/vote", h.cast)
	router.Delete("/submissions/:id/unlike", h.revoke)
	router.Post("/votes/check", h.check)
}

func (h *VoteHandler) cast(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.VoteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Cast(c.Context(), submissionID, payload, c.IP())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "vote recorded", result)
}

func (h *VoteHandler) revoke(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.VoteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Revoke(c.Context(), submissionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "vote removed", result)
}

func (h *VoteHandler) check(c *fiber.Ctx) error {
	var payload dto.VoteCheckRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Check(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "vote status retrieved", result)
}

func (h *VoteHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrDuplicateVote):
		return utils.SendError(c, fiber.StatusConflict, "already voted for this submission")
	case errors.Is(err, service.ErrVoteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no vote to remove")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
