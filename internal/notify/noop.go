package notify

import (
	"context"

	"jobbridge/internal/domain/event"
)

// Noop is used when no NATS_URL is configured and in tests.
type Noop struct{}

func (Noop) Publish(context.Context, event.Event) {}
