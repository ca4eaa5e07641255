// Package ports defines the contracts between the order core and its
// infrastructure: the authoritative store, the cache, the vendor service,
// and the event feed. Adapters implement these; the core depends only on
// the interfaces.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Commit semantics live in the UnitOfWork: repository calls made within an
// active transaction only become durable on Commit.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, replacing its
	// items. The update is version-checked: when the stored version no longer
	// matches the aggregate's loaded version, Update fails with a
	// ConcurrencyConflictError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByID retrieves an order without its items.
	// Returns an ObjectNotFoundError when no order carries the ID.
	GetByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDWithItems retrieves an order with its full item collection.
	// Returns an ObjectNotFoundError when no order carries the ID.
	GetByIDWithItems(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its items.
	// Returns an ObjectNotFoundError when no order carries the ID.
	Delete(ctx context.Context, id kernel.UUID) error
}
