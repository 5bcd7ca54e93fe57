package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/events"
)

// LiveHandler streams submission and vote events over a websocket so open
// galleries refresh without polling.
type LiveHandler struct {
	hub    *events.Hub
	logger zerolog.Logger
}

// NewLiveHandler creates a live feed handler instance.
func NewLiveHandler(hub *events.Hub, logger zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: logger.With().Str("component", "live_handler").Logger(),
	}
}

// Register binds the live feed routes under the provided router group.
func (h *LiveHandler) Register(router fiber.Router) {
	router.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/live", websocket.New(h.handleConnection))
}

func (h *LiveHandler) handleConnection(conn *websocket.Conn) {
	feed, cancel := h.hub.Subscribe()
	defer cancel()

	h.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("live feed connected")
	defer h.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("live feed disconnected")

	// The feed is write-only. Reading in the background is still required to
	// process close frames from the client.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-feed:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
