package commands

import (
	"context"
	"fmt"

	"orders/internal/core/application/contracts"
	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves the customer and vendor, builds the aggregate, and commits the
// order together with its OrderCreated outbox row in one transaction, so the
// event can never be lost between commit and publish.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	vendors    ports.VendorGateway
	cache      *ordercache.Layer
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	vendors ports.VendorGateway,
	cache *ordercache.Layer,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		vendors:    vendors,
		cache:      cache,
	}
}

// Handle processes the order creation command.
//
// Fails with an ObjectNotFoundError when the customer or vendor is absent,
// with an InvalidStateError when the vendor is inactive or the item list is
// empty, and with the aggregate's own error class for invalid items. None of
// these failure paths persist or announce anything.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*queries.OrderDetailResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cust, err := uow.CustomerRepository().GetByID(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	vendor, err := h.vendors.GetByID(ctx, cmd.VendorID())
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, errs.NewObjectNotFoundError("vendor", cmd.VendorID().String())
	}
	if !vendor.IsActive {
		return nil, errs.NewInvalidStateErrorWithCause(
			"cannot create orders for an inactive vendor",
			fmt.Errorf("vendor %s is inactive", vendor.ID),
		)
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), cmd.VendorID(), cmd.Notes())
	if err != nil {
		return nil, err
	}
	for _, item := range cmd.Items() {
		if _, err = o.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	if o.ItemCount() == 0 {
		return nil, errs.NewInvalidStateError("cannot create order without items")
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	evt := contracts.NewOrderCreated(o)
	if err = addOutboxEvent(ctx, uow.OutboxRepository(), evt.EventID, evt.EventType, evt); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The new order has no detail key yet; only summaries can be stale.
	if err = h.cache.InvalidateSummaries(ctx, cmd.CustomerID(), cmd.VendorID()); err != nil {
		return nil, err
	}

	resp := queries.NewOrderDetailResponse(o, cust, vendor)
	return &resp, nil
}
