package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand represents a request to append a line item to a
// pending order.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to append a line item.
// Validates the order and product references; name, quantity, and price
// rules are enforced by the aggregate during handling.
func NewAddOrderItemCommand(
	orderID, productID kernel.UUID,
	productName string,
	quantity int,
	unitPrice kernel.Money,
) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the order to modify.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the referenced product's identifier.
func (c AddOrderItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// ProductName returns the product name snapshot to store on the item.
func (c AddOrderItemCommand) ProductName() string {
	return c.productName
}

// Quantity returns the requested quantity.
func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the per-unit price.
func (c AddOrderItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}
