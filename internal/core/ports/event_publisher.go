package ports

import (
	"context"
	"time"
)

// EventPublisher delivers integration events to the message feed.
// Delivery is at-least-once: the broker persists accepted messages, but the
// caller may publish the same message again after an ambiguous failure.
type EventPublisher interface {
	// Publish sends one message routed by its event type. messageID and
	// occurredAt travel as message properties so consumers can deduplicate.
	Publish(ctx context.Context, eventType, messageID string, occurredAt time.Time, body []byte) error
}
