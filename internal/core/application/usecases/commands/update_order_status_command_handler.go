package commands

import (
	"context"
	"fmt"

	"orders/internal/core/application/contracts"
	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies Confirm and Cancel transitions.
// InProgress and Completed are declared statuses without an implemented
// trigger, so requesting them fails with a ValueIsInvalidError instead of
// guessing at product intent.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	vendors    ports.VendorGateway
	cache      *ordercache.Layer
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	vendors ports.VendorGateway,
	cache *ordercache.Layer,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		vendors:    vendors,
		cache:      cache,
	}
}

// Handle processes the status transition command. The version-checked update
// and the OrderStatusChanged outbox row commit in one transaction; the detail
// key and the base summary keys are invalidated before the projection returns,
// so a subsequent read observes the new status.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*queries.OrderDetailResponse, error) {
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

	o, err := uow.OrderRepository().GetByIDWithItems(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := o.Status()
	switch cmd.Target() {
	case order.Confirmed:
		err = o.Confirm()
	case order.Cancelled:
		err = o.Cancel()
	default:
		err = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a supported target status", cmd.Target()))
	}
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	evt := contracts.NewOrderStatusChanged(o, previous)
	if err = addOutboxEvent(ctx, uow.OutboxRepository(), evt.EventID, evt.EventType, evt); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.cache.InvalidateDetail(ctx, o.ID()); err != nil {
		return nil, err
	}
	if err = h.cache.InvalidateSummaries(ctx, o.CustomerID(), o.VendorID()); err != nil {
		return nil, err
	}

	return buildDetail(ctx, uow.CustomerRepository(), h.vendors, o), nil
}
