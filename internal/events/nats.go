package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSPublisher mirrors events onto a NATS subject per event type, e.g.
// promptclass.vote.cast. Publishing is fire-and-forget: delivery problems are
// logged, never surfaced to the request path.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
}

// NewNATSPublisher connects to the NATS server at the given URL.
func NewNATSPublisher(url string, logger zerolog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("promptclass-api"))
	if err != nil {
		return nil, err
	}

	return &NATSPublisher{
		conn:   conn,
		prefix: "promptclass.",
		logger: logger.With().Str("component", "nats_publisher").Logger(),
	}, nil
}

// Publish implements Publisher.
func (p *NATSPublisher) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to marshal event")
		return
	}

	if err := p.conn.Publish(p.prefix+event.Type, payload); err != nil {
		p.logger.Warn().Err(err).Str("type", event.Type).Msg("failed to publish event")
	}
}

// Close drains the underlying connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
