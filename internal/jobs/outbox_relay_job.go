package jobs

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// relayBatchSize bounds how many outbox rows one relay tick drains.
const relayBatchSize = 50

// relayTickTimeout bounds one tick so a hung broker cannot pile up ticks.
const relayTickTimeout = 30 * time.Second

// OutboxRelayJob drains unpublished outbox rows to the message feed.
// Runs every two seconds: frequent enough that consumers see changes with
// low lag, infrequent enough to batch bursts of writes.
//
// Publishing is at-least-once. A row is only marked published after the
// broker accepts it; a failure between publish and mark leaves the row
// pending and it is published again on the next tick.
type OutboxRelayJob struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay over the given outbox and publisher.
func NewOutboxRelayJob(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		outbox:    outbox,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay, ticking every two seconds.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("*/2 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), relayTickTimeout)
		defer cancel()
		if err := j.RelayOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay tick failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every 2 seconds)")
	return nil
}

// Stop stops the relay.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RelayOnce drains one batch: fetch unpublished rows oldest first, publish
// each, and mark the successfully published ones. A publish failure stops
// the batch so ordering per batch is preserved; already-published rows are
// still marked.
func (j *OutboxRelayJob) RelayOnce(ctx context.Context) error {
	messages, err := j.outbox.FetchUnpublished(ctx, relayBatchSize)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	published := make([]uuid.UUID, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if err = j.publisher.Publish(ctx, msg.EventType, msg.ID.String(), msg.CreatedAt, msg.Payload); err != nil {
			publishErr = err
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err = j.outbox.MarkPublished(ctx, published); err != nil {
			return err
		}
	}

	if publishErr != nil {
		return publishErr
	}

	j.logger.DebugContext(ctx, "Outbox batch relayed", "count", len(published))
	return nil
}
