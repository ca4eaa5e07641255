package order

import (
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// OrderItem is a line item owned exclusively by its Order. It has no lifecycle
// of its own: construction, quantity changes, and removal all go through the
// owning aggregate, which recomputes the order total afterwards.
//
// The product name is a denormalized snapshot taken at the time the item was
// added; it is never re-fetched from a product catalog.
type OrderItem struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money
	lineTotal   kernel.Money
	updatedAt   *time.Time
}

// newOrderItem creates a line item. Only Order.AddItem calls this.
func newOrderItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (*OrderItem, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, errs.NewValueIsRequiredError("productName")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice))
	}

	return &OrderItem{
		id:          kernel.NewUUID(),
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		lineTotal:   unitPrice.MulInt(quantity),
	}, nil
}

// RestoreOrderItem reconstructs a line item from persistence, revalidating the
// same rules the constructor enforces.
func RestoreOrderItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	quantity int,
	unitPrice kernel.Money,
	updatedAt *time.Time,
) (*OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	item, err := newOrderItem(productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	item.id = id
	item.updatedAt = updatedAt
	return item, nil
}

// updateQuantity changes the quantity and recomputes the line total.
// Only the owning Order calls this; the order total recompute follows there.
func (i *OrderItem) updateQuantity(newQuantity int) error {
	if newQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", newQuantity))
	}

	now := time.Now().UTC()
	i.quantity = newQuantity
	i.lineTotal = i.unitPrice.MulInt(newQuantity)
	i.updatedAt = &now
	return nil
}

// ID returns the line item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product's identifier.
func (i *OrderItem) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot taken when the item was added.
func (i *OrderItem) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity. Always positive.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price. Never negative.
func (i *OrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price times quantity.
func (i *OrderItem) LineTotal() kernel.Money {
	return i.lineTotal
}

// UpdatedAt returns the time of the last quantity change, or nil if never changed.
func (i *OrderItem) UpdatedAt() *time.Time {
	return i.updatedAt
}
