package commands_test

import (
	"testing"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// itemMutationFixture wires the shared mock plumbing of the three item
// handlers: load with items, modifiability check, version-checked update,
// commit, detail invalidation, projection.
type itemMutationFixture struct {
	orderRepo *MockOrderRepository
	custRepo  *MockCustomerRepository
	vendors   *MockVendorGateway
	uow       *MockUoW
	factory   *MockUoWFactory
	cache     *memCache
	layer     *ordercache.Layer
}

func newItemMutationFixture(t *testing.T, o *order.Order) *itemMutationFixture {
	t.Helper()
	ctx := t.Context()

	f := &itemMutationFixture{
		orderRepo: new(MockOrderRepository),
		custRepo:  new(MockCustomerRepository),
		vendors:   new(MockVendorGateway),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		cache:     newMemCache(),
	}
	f.layer = newTestLayer(f.cache)

	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.orderRepo.On("GetByIDWithItems", mock.Anything, o.ID()).Return(o, nil)
	f.factory.On("Create").Return(f.uow)
	return f
}

// expectSuccess arms the mocks for the happy path after the load.
func (f *itemMutationFixture) expectSuccess(t *testing.T, o *order.Order) {
	t.Helper()
	ctx := t.Context()

	f.orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("CustomerRepository").Return(f.custRepo)
	f.custRepo.On("GetByID", mock.Anything, o.CustomerID()).
		Return(testCustomer(t, o.CustomerID()), nil).Once()
	f.vendors.On("GetByID", mock.Anything, o.VendorID()).
		Return(testVendor(o.VendorID(), true), nil).Once()
}

func TestAddOrderItemCommandHandler_Handle(t *testing.T) {
	t.Run("adds_item_and_recomputes_total", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		f := newItemMutationFixture(t, o)
		f.expectSuccess(t, o)

		cmd, err := commands.NewAddOrderItemCommand(
			o.ID(), kernel.NewUUID(), "Bracket", 3, testMoney(t, "5.00"))
		require.NoError(t, err)

		h := commands.NewAddOrderItemCommandHandler(f.factory, f.vendors, f.layer)
		resp, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)

		// Fixture order starts at 20.00 (2 x 10.00); three brackets add 15.00.
		require.Equal(t, "35", resp.TotalAmount.String())
		require.Equal(t, 2, resp.ItemCount)
		require.Contains(t, f.cache.removed, ordercache.DetailKey(o.ID()))
	})

	t.Run("rejects_confirmed_order", func(t *testing.T) {
		o := restoredOrder(t, order.Confirmed)
		f := newItemMutationFixture(t, o)

		cmd, err := commands.NewAddOrderItemCommand(
			o.ID(), kernel.NewUUID(), "Bracket", 1, testMoney(t, "5.00"))
		require.NoError(t, err)

		h := commands.NewAddOrderItemCommandHandler(f.factory, f.vendors, f.layer)
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects_zero_quantity_via_aggregate", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		f := newItemMutationFixture(t, o)

		cmd, err := commands.NewAddOrderItemCommand(
			o.ID(), kernel.NewUUID(), "Bracket", 0, testMoney(t, "5.00"))
		require.NoError(t, err)

		h := commands.NewAddOrderItemCommandHandler(f.factory, f.vendors, f.layer)
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRemoveOrderItemCommandHandler_Handle(t *testing.T) {
	t.Run("removes_item_and_recomputes_total", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		itemID := o.Items()[0].ID()
		f := newItemMutationFixture(t, o)
		f.expectSuccess(t, o)

		cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), itemID)
		require.NoError(t, err)

		h := commands.NewRemoveOrderItemCommandHandler(f.factory, f.vendors, f.layer)
		resp, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)

		require.Equal(t, "0", resp.TotalAmount.String())
		require.Equal(t, 0, resp.ItemCount)
		require.Contains(t, f.cache.removed, ordercache.DetailKey(o.ID()))
	})

	t.Run("absent_item_is_a_noop_that_still_commits", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		f := newItemMutationFixture(t, o)
		f.expectSuccess(t, o)

		cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewRemoveOrderItemCommandHandler(f.factory, f.vendors, f.layer)
		resp, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)
		require.Equal(t, 1, resp.ItemCount)
	})

	t.Run("rejects_cancelled_order", func(t *testing.T) {
		o := restoredOrder(t, order.Cancelled)
		f := newItemMutationFixture(t, o)

		cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewRemoveOrderItemCommandHandler(f.factory, f.vendors, f.layer)
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestUpdateItemQuantityCommandHandler_Handle(t *testing.T) {
	t.Run("requantifies_item_and_recomputes_total", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		itemID := o.Items()[0].ID()
		f := newItemMutationFixture(t, o)
		f.expectSuccess(t, o)

		cmd, err := commands.NewUpdateItemQuantityCommand(o.ID(), itemID, 5)
		require.NoError(t, err)

		h := commands.NewUpdateItemQuantityCommandHandler(f.factory, f.vendors, f.layer)
		resp, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)

		require.Equal(t, "50", resp.TotalAmount.String())
		require.Contains(t, f.cache.removed, ordercache.DetailKey(o.ID()))
	})

	t.Run("absent_item_fails_with_not_found", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		f := newItemMutationFixture(t, o)

		cmd, err := commands.NewUpdateItemQuantityCommand(o.ID(), kernel.NewUUID(), 5)
		require.NoError(t, err)

		h := commands.NewUpdateItemQuantityCommandHandler(f.factory, f.vendors, f.layer)
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects_confirmed_order", func(t *testing.T) {
		o := restoredOrder(t, order.Confirmed)
		f := newItemMutationFixture(t, o)

		cmd, err := commands.NewUpdateItemQuantityCommand(o.ID(), o.Items()[0].ID(), 5)
		require.NoError(t, err)

		h := commands.NewUpdateItemQuantityCommandHandler(f.factory, f.vendors, f.layer)
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

// The projection returned by mutations carries the same shape reads serve,
// so API clients can use the response to refresh local state directly.
func TestItemMutationProjectionShape(t *testing.T) {
	o := restoredOrder(t, order.Pending)
	f := newItemMutationFixture(t, o)
	f.expectSuccess(t, o)

	cmd, err := commands.NewUpdateItemQuantityCommand(o.ID(), o.Items()[0].ID(), 3)
	require.NoError(t, err)

	h := commands.NewUpdateItemQuantityCommandHandler(f.factory, f.vendors, f.layer)
	resp, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)

	var _ *queries.OrderDetailResponse = resp
	require.Equal(t, o.OrderNumber(), resp.OrderNumber)
	require.Equal(t, "Acme Corp", resp.CustomerName)
	require.Equal(t, "Supply Co", resp.VendorName)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 3, resp.Items[0].Quantity)
}
