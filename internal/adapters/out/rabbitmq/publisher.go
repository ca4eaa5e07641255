// Package rabbitmq carries integration events over a durable topic exchange.
// The outbox relay publishes through it; the consumer binds a queue per
// registered event type and dispatches into the application event bus.
package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher implements the EventPublisher port on an AMQP channel.
// Messages are persistent and routed by event type on a topic exchange.
type Publisher struct {
	channel  *amqp.Channel
	exchange string
}

// NewPublisher declares the durable topic exchange and returns a publisher
// bound to it.
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return nil, err
	}

	return &Publisher{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish sends one message routed by its event type. MessageId and
// Timestamp travel as AMQP properties so consumers can deduplicate.
func (p *Publisher) Publish(ctx context.Context, eventType, messageID string, occurredAt time.Time, body []byte) error {
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		eventType, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    occurredAt,
			Type:         eventType,
			Body:         body,
		},
	)
}

// Close releases the channel.
func (p *Publisher) Close() error {
	return p.channel.Close()
}
