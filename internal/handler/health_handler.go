package handler

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/config"
	"github.com/noah-isme/promptclass-api/internal/service"
	"github.com/noah-isme/promptclass-api/internal/utils"
)

// HealthSummary is the public payload of the health endpoint.
type HealthSummary struct {
	Status      string               `json:"status"`
	Service     string               `json:"service"`
	Environment string               `json:"environment"`
	Report      service.HealthReport `json:"report"`
}

// ConfigEcho lists the non-secret settings shown on the dashboard.
type ConfigEcho struct {
	Service         string `json:"service"`
	Environment     string `json:"environment"`
	ImageAPIBaseURL string `json:"image_api_base_url"`
	TextAPIBaseURL  string `json:"text_api_base_url"`
	ProbeTimeout    string `json:"probe_timeout"`
	ResultsCacheTTL string `json:"results_cache_ttl"`
}

// HealthDetails is the payload of the password-guarded diagnostics endpoint.
type HealthDetails struct {
	Report service.HealthReport `json:"report"`
	Config ConfigEcho           `json:"config"`
}

// HealthHandler serves liveness and the password-guarded diagnostics view.
type HealthHandler struct {
	service service.HealthService
	cfg     config.Config
	logger  zerolog.Logger
}

// NewHealthHandler builds a health handler instance.
func NewHealthHandler(healthService service.HealthService, cfg config.Config, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		service: healthService,
		cfg:     cfg,
		logger:  logger.With().Str("component", "health_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.summary)
	router.Get("/health/details", h.details)
}

func (h *HealthHandler) summary(c *fiber.Ctx) error {
	report := h.service.Report(c.Context())

	payload := HealthSummary{
		Status:      report.Status,
		Service:     h.cfg.AppName,
		Environment: h.cfg.AppEnv,
		Report:      report,
	}

	if report.Status == service.HealthStatusUnhealthy {
		return utils.SendErrorWithData(c, fiber.StatusServiceUnavailable, "service unhealthy", payload)
	}

	return utils.SendSuccess(c, "service healthy", payload)
}

func (h *HealthHandler) details(c *fiber.Ctx) error {
	if h.cfg.DashboardPassword == "" {
		h.logger.Error().Msg("health dashboard password is not configured")
		return utils.SendError(c, fiber.StatusInternalServerError, "health dashboard is not configured")
	}

	provided := c.Get("X-Dashboard-Password")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.cfg.DashboardPassword)) != 1 {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid dashboard password")
	}

	payload := HealthDetails{
		Report: h.service.Report(c.Context()),
		Config: ConfigEcho{
			Service:         h.cfg.AppName,
			Environment:     h.cfg.AppEnv,
			ImageAPIBaseURL: h.cfg.ImageAPIBaseURL,
			TextAPIBaseURL:  h.cfg.TextAPIBaseURL,
			ProbeTimeout:    h.cfg.ProbeTimeout.String(),
			ResultsCacheTTL: h.cfg.ResultsCacheTTL.String(),
		},
	}

	return utils.SendSuccess(c, "health report retrieved", payload)
}
