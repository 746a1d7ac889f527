package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"jobbridge/internal/domain/event"
)

const subjectPrefix = "jobbridge.notify."

// NATSNotifier forwards events to the external notification service over
// NATS. Fire and forget: failures are logged and never block the caller.
type NATSNotifier struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewNATSNotifier(url string, logger *slog.Logger) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("jobbridge-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSNotifier{conn: conn, logger: logger}, nil
}

func (n *NATSNotifier) Publish(_ context.Context, e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		n.logger.Error("failed to encode notification", "event", e.Name, "error", err)
		return
	}
	if err := n.conn.Publish(subjectPrefix+e.Name, payload); err != nil {
		n.logger.Error("failed to publish notification", "event", e.Name, "error", err)
	}
}

func (n *NATSNotifier) Close() {
	if n.conn != nil {
		_ = n.conn.Drain()
	}
}
