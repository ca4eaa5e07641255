package rabbitmq

import (
	"context"
	"log/slog"

	"orders/internal/core/application/eventbus"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains one queue bound to the topic exchange and dispatches each
// delivery into the event bus registry by its routing key.
type Consumer struct {
	channel  *amqp.Channel
	queue    string
	registry *eventbus.Registry
	logger   *slog.Logger
}

// NewConsumer declares a durable queue and binds it to the exchange with one
// binding per event type the registry knows about. Event types registered
// after construction are not bound.
func NewConsumer(
	conn *amqp.Connection,
	exchange, queue string,
	registry *eventbus.Registry,
	logger *slog.Logger,
) (*Consumer, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}

	if _, err = channel.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, err
	}

	for _, eventType := range registry.EventTypes() {
		if err = channel.QueueBind(queue, eventType, exchange, false, nil); err != nil {
			return nil, err
		}
	}

	return &Consumer{
		channel:  channel,
		queue:    queue,
		registry: registry,
		logger:   logger.With("component", "rabbitmq-consumer"),
	}, nil
}

// Run consumes deliveries until the context is cancelled or the channel
// closes. Successful dispatches ack; failed ones nack with requeue, relying
// on consumer-side idempotency for the resulting redelivery.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.ConsumeWithContext(ctx,
		c.queue,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	if err := c.registry.Dispatch(ctx, delivery.RoutingKey, delivery.Body); err != nil {
		c.logger.ErrorContext(ctx, "Event dispatch failed",
			"eventType", delivery.RoutingKey,
			"messageId", delivery.MessageId,
			"error", err)

		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.logger.ErrorContext(ctx, "Nack failed", "messageId", delivery.MessageId, "error", nackErr)
		}
		return
	}

	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.ErrorContext(ctx, "Ack failed", "messageId", delivery.MessageId, "error", ackErr)
	}
}

// Close releases the channel.
func (c *Consumer) Close() error {
	return c.channel.Close()
}
