package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher is the part of *nats.Conn the NATS handler needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATSHandler publishes every event as JSON to a fixed subject.
type NATSHandler struct {
	publisher Publisher
	subject   string
	logger    *slog.Logger
}

var _ EventHandler = (*NATSHandler)(nil)

// NewNATSHandler creates a handler that publishes to subject.
func NewNATSHandler(publisher Publisher, subject string, logger *slog.Logger) *NATSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NATSHandler{
		publisher: publisher,
		subject:   subject,
		logger:    logger.With("component", "nats_event_handler"),
	}
}

// HandleEvent publishes event. Delivery is fire-and-forget.
func (h *NATSHandler) HandleEvent(_ context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := h.publisher.Publish(h.subject, body); err != nil {
		return fmt.Errorf("publish event %s to %s: %w", event.ID, h.subject, err)
	}
	h.logger.Debug("published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"subject", h.subject)
	return nil
}

// ConnectNATS opens a NATS connection that keeps reconnecting in the
// background and logs connection state changes.
func ConnectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "nats")

	nc, err := nats.Connect(url,
		nats.Name("studybuddy-api"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", "url", c.ConnectedUrlRedacted())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
