// Package eventbus routes inbound integration events to their handlers.
// Handlers register under a type discriminator at startup; dispatch is a
// lookup by discriminator, so adding an event type never touches the feed
// consumer.
package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Handler processes one raw event payload. The payload is the full JSON
// message as published, envelope included.
type Handler func(ctx context.Context, payload []byte) error

// Registry maps event type discriminators to their handlers.
// Subscribe during startup; Dispatch is safe for concurrent use afterwards.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewRegistry creates an empty handler registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "eventbus"),
	}
}

// Subscribe registers a handler for an event type. Multiple handlers may
// subscribe to the same type; all of them run on dispatch.
func (r *Registry) Subscribe(eventType string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

// Dispatch runs every handler registered for the event type and joins their
// errors. An event type with no handlers is logged and dropped: the feed is
// at-least-once, so an unknown type must be acknowledged, not redelivered
// forever.
func (r *Registry) Dispatch(ctx context.Context, eventType string, payload []byte) error {
	r.mu.RLock()
	handlers := r.handlers[eventType]
	r.mu.RUnlock()

	if len(handlers) == 0 {
		r.logger.WarnContext(ctx, "No handlers registered for event type", "eventType", eventType)
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EventTypes returns the discriminators with at least one registered handler.
// The feed consumer uses this to decide which routing keys to bind.
func (r *Registry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.handlers))
	for eventType := range r.handlers {
		types = append(types, eventType)
	}
	return types
}
