package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the purchase order aggregate root. It owns its line items and is the
// only code path allowed to mutate order state.
//
// Order maintains these invariants:
//   - Total amount always equals the sum of item line totals; recomputed
//     synchronously on every add, remove, and quantity change
//   - Items are mutable only while the order is Pending
//   - Confirmation requires at least one item
//   - The order number is assigned once at creation and never changes
//   - Quantity is always positive; unit price is never negative
//
// The version field supports optimistic concurrency: persistence must refuse an
// update whose loaded version no longer matches the stored one, so concurrent
// writers cannot silently drop each other's item changes.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-readable identifier, immutable after creation
	orderNumber string

	// customerID references the ordering customer (externally owned record)
	customerID kernel.UUID

	// vendorID references the fulfilling vendor (externally validated)
	vendorID kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// totalAmount is derived from the items; never set directly
	totalAmount kernel.Money

	// orderDate is the UTC creation timestamp
	orderDate time.Time

	// notes is optional free text supplied at creation
	notes string

	// updatedAt is the time of the last mutation (nil until first mutation)
	updatedAt *time.Time

	// items is the ordered line item collection; order is display order only
	items []*OrderItem

	// version is the optimistic concurrency counter, starting at 1
	version int

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a pending order with no items, a zero total, and a freshly
// generated order number. It performs no external calls: customer and vendor
// references are validated by the application layer before construction.
func NewOrder(id, customerID, vendorID kernel.UUID, notes string) (*Order, error) {
	o := &Order{
		status:        Pending,
		totalAmount:   kernel.Zero(),
		orderDate:     time.Now().UTC(),
		notes:         notes,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
	); err != nil {
		return nil, err
	}

	o.orderNumber = generateOrderNumber(o.orderDate)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, revalidating status,
// version, and item consistency. The total is recomputed from the restored
// items rather than trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID, vendorID kernel.UUID,
	status Status,
	notes string,
	orderDate time.Time,
	updatedAt *time.Time,
	version int,
	items []*OrderItem,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a positive version", version))
	}

	o := &Order{
		orderNumber:   orderNumber,
		status:        status,
		orderDate:     orderDate,
		notes:         notes,
		updatedAt:     updatedAt,
		version:       version,
		items:         items,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Repositories call this before persisting to reject zero-value structs.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the immutable human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// VendorID returns the fulfilling vendor's identifier.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the derived order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// OrderDate returns the UTC creation timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Notes returns the optional free-text notes ("" when absent).
func (o *Order) Notes() string {
	return o.notes
}

// UpdatedAt returns the time of the last mutation, or nil if never mutated.
func (o *Order) UpdatedAt() *time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency counter.
func (o *Order) Version() int {
	return o.version
}

// Items returns the line items in display order. The slice is a copy;
// mutating it does not affect the aggregate.
func (o *Order) Items() []*OrderItem {
	items := make([]*OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// ItemCount returns the number of line items.
func (o *Order) ItemCount() int {
	return len(o.items)
}

// IsModifiable reports whether items may currently be added, removed,
// or requantified. Only Pending orders are modifiable.
func (o *Order) IsModifiable() bool {
	return o.status.IsMutable()
}

// AddItem appends a line item and recomputes the total.
//
// Fails with an InvalidStateError when the order is no longer pending, and
// with a value error when the quantity is not positive, the unit price is
// negative, or the product name is empty. Returns the created item.
func (o *Order) AddItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (*OrderItem, error) {
	if !o.status.IsMutable() {
		return nil, errs.NewInvalidStateErrorWithCause(
			"cannot modify confirmed or cancelled orders",
			fmt.Errorf("order status is %s", o.status),
		)
	}

	item, err := newOrderItem(productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.items = append(o.items, item)
	o.recalculateTotal()
	o.touch()
	return item, nil
}

// RemoveItem removes a line item and recomputes the total.
//
// Fails with an InvalidStateError when the order is no longer pending.
// Removing an absent item is a no-op, which makes removal idempotent.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if !o.status.IsMutable() {
		return errs.NewInvalidStateErrorWithCause(
			"cannot modify confirmed or cancelled orders",
			fmt.Errorf("order status is %s", o.status),
		)
	}

	for idx, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.recalculateTotal()
			o.touch()
			return nil
		}
	}

	return nil
}

// UpdateItemQuantity changes a line item's quantity, recomputing its line
// total and the order total.
//
// Fails with a value error for non-positive quantities, an InvalidStateError
// when the order is no longer pending, and an ObjectNotFoundError when no
// item carries the given ID.
func (o *Order) UpdateItemQuantity(itemID kernel.UUID, newQuantity int) error {
	if newQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", newQuantity))
	}
	if !o.status.IsMutable() {
		return errs.NewInvalidStateErrorWithCause(
			"cannot modify confirmed or cancelled orders",
			fmt.Errorf("order status is %s", o.status),
		)
	}

	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			if err := item.updateQuantity(newQuantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.touch()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("orderItem", itemID.String())
}

// Confirm transitions the order to Confirmed.
//
// Fails with an InvalidStateError when the order is not pending or holds no items.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	if len(o.items) == 0 {
		return errs.NewInvalidStateError("cannot confirm order without items")
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel transitions the order to Cancelled from any non-completed state.
//
// Fails with an InvalidStateError when the order is already completed.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) recalculateTotal() {
	total := kernel.Zero()
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	o.totalAmount = total
}

func (o *Order) touch() {
	now := time.Now().UTC()
	o.updatedAt = &now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	o.vendorID = vendorID
	return nil
}

// generateOrderNumber builds the immutable order number: "ORD-" plus the
// creation date plus eight characters of fresh randomness, e.g.
// "ORD-20260114-3F9A217C".
func generateOrderNumber(orderDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", orderDate.Format("20060102"), suffix)
}
