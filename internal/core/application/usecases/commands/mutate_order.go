package commands

import (
	"context"
	"fmt"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// mutateOrder is the shared flow of the item-mutation handlers: load the
// order with its items, check modifiability before the aggregate's own check
// so the caller gets the business-rule error, apply the mutation, persist
// with a version check, commit, and invalidate the detail key.
func mutateOrder(
	ctx context.Context,
	uowFactory UoWFactory,
	vendors ports.VendorGateway,
	cache *ordercache.Layer,
	orderID kernel.UUID,
	mutate func(*order.Order) error,
) (*queries.OrderDetailResponse, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.IsModifiable() {
		return nil, errs.NewInvalidStateErrorWithCause(
			"cannot modify confirmed or cancelled orders",
			fmt.Errorf("order status is %s", o.Status()),
		)
	}

	if err = mutate(o); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = cache.InvalidateDetail(ctx, o.ID()); err != nil {
		return nil, err
	}

	return buildDetail(ctx, uow.CustomerRepository(), vendors, o), nil
}
