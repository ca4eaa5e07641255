package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrUpdateItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateItemQuantityCommand must be created via NewUpdateItemQuantityCommand constructor",
)

// UpdateItemQuantityCommand represents a request to change the quantity of
// one line item on a pending order.
type UpdateItemQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateItemQuantityCommand creates a quantity change command.
// The positive-quantity rule is enforced by the aggregate during handling.
func NewUpdateItemQuantityCommand(orderID, itemID kernel.UUID, quantity int) (UpdateItemQuantityCommand, error) {
	cmd := UpdateItemQuantityCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return UpdateItemQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemQuantityCommandIsNotConstructed)
}

// OrderID returns the order to modify.
func (c UpdateItemQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the line item to requantify.
func (c UpdateItemQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the requested new quantity.
func (c UpdateItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateItemQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateItemQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}
