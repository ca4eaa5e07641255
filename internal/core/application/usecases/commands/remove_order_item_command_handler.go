package commands

import (
	"context"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// RemoveOrderItemCommandHandler removes a line item from an existing order.
type RemoveOrderItemCommandHandler struct {
	uowFactory UoWFactory
	vendors    ports.VendorGateway
	cache      *ordercache.Layer
}

// NewRemoveOrderItemCommandHandler creates a handler for item removals.
func NewRemoveOrderItemCommandHandler(
	uowFactory UoWFactory,
	vendors ports.VendorGateway,
	cache *ordercache.Layer,
) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
		vendors:    vendors,
		cache:      cache,
	}
}

// Handle loads the order with its items, checks modifiability, removes the
// item if present, and persists with a version check.
func (h *RemoveOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveOrderItemCommand,
) (*queries.OrderDetailResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.vendors, h.cache, cmd.OrderID(), func(o *order.Order) error {
		return o.RemoveItem(cmd.ItemID())
	})
}
