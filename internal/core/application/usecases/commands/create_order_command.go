package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line item within a CreateOrderCommand.
// Quantity and price constraints are enforced by the aggregate when the
// item is added, so each input fails with the aggregate's own error class.
type OrderItemInput struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   kernel.Money
}

// CreateOrderCommand represents a request to create a new purchase order for
// a customer against an externally validated vendor.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	vendorID   kernel.UUID
	notes      string
	items      []OrderItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the customer and vendor references; item-level rules are
// enforced by the aggregate during handling.
func NewCreateOrderCommand(
	customerID, vendorID kernel.UUID,
	notes string,
	items []OrderItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: notes,
		items: items,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setVendorID(vendorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// VendorID returns the fulfilling vendor's identifier.
func (c CreateOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Notes returns the optional free-text notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []OrderItemInput {
	items := make([]OrderItemInput, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	c.vendorID = vendorID
	return nil
}
