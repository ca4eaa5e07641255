package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is one integration event persisted alongside the write that
// produced it. Payload is the full JSON event, envelope included; EventType
// mirrors the envelope discriminator for routing without parsing the payload.
type OutboxMessage struct {
	ID          uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// OutboxRepository stores integration events in the same transaction as the
// aggregate write that produced them, so a committed change can never go
// unannounced. A relay process drains unpublished rows to the feed.
type OutboxRepository interface {
	// Add persists a message within the current transaction.
	Add(ctx context.Context, message OutboxMessage) error

	// FetchUnpublished returns up to limit unpublished messages, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished records the publish time for the given messages.
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}
