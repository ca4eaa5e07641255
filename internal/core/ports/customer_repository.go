package ports

import (
	"context"

	"orders/internal/core/domain/model/customer"
	"orders/internal/core/domain/model/kernel"
)

// CustomerRepository defines read access to externally owned customer records.
type CustomerRepository interface {
	// GetByID retrieves a customer record.
	// Returns an ObjectNotFoundError when no customer carries the ID.
	GetByID(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
