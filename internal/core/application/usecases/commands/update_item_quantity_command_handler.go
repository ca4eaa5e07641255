package commands

import (
	"context"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// UpdateItemQuantityCommandHandler changes a line item's quantity on an
// existing order.
type UpdateItemQuantityCommandHandler struct {
	uowFactory UoWFactory
	vendors    ports.VendorGateway
	cache      *ordercache.Layer
}

// NewUpdateItemQuantityCommandHandler creates a handler for quantity changes.
func NewUpdateItemQuantityCommandHandler(
	uowFactory UoWFactory,
	vendors ports.VendorGateway,
	cache *ordercache.Layer,
) UpdateItemQuantityCommandHandler {
	return UpdateItemQuantityCommandHandler{
		uowFactory: uowFactory,
		vendors:    vendors,
		cache:      cache,
	}
}

// Handle loads the order with its items, checks modifiability, applies the
// quantity change, and persists with a version check. The line total and
// order total recompute inside the aggregate.
func (h *UpdateItemQuantityCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateItemQuantityCommand,
) (*queries.OrderDetailResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.vendors, h.cache, cmd.OrderID(), func(o *order.Order) error {
		return o.UpdateItemQuantity(cmd.ItemID(), cmd.Quantity())
	})
}
