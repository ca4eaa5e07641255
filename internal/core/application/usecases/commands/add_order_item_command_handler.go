package commands

import (
	"context"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// AddOrderItemCommandHandler appends a line item to an existing order.
type AddOrderItemCommandHandler struct {
	uowFactory UoWFactory
	vendors    ports.VendorGateway
	cache      *ordercache.Layer
}

// NewAddOrderItemCommandHandler creates a handler for item additions.
func NewAddOrderItemCommandHandler(
	uowFactory UoWFactory,
	vendors ports.VendorGateway,
	cache *ordercache.Layer,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		vendors:    vendors,
		cache:      cache,
	}
}

// Handle loads the order with its items, checks modifiability, applies the
// addition, and persists with a version check. Only the detail key is
// invalidated: item changes do not move the order between summary lists.
func (h *AddOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddOrderItemCommand,
) (*queries.OrderDetailResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.vendors, h.cache, cmd.OrderID(), func(o *order.Order) error {
		_, err := o.AddItem(cmd.ProductID(), cmd.ProductName(), cmd.Quantity(), cmd.UnitPrice())
		return err
	})
}
