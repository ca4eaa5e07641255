// Package customer holds the customer entity referenced by orders. Customer
// records are owned by an external system; this service only reads them to
// validate order creation and to enrich projections with names and emails.
package customer

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via RestoreCustomer")
)

// Customer is a read-only view of an externally owned customer record.
// Orders reference customers by ID; nothing in this service mutates them.
type Customer struct {
	id        kernel.UUID
	name      string
	email     string
	phone     string
	address   string
	createdAt time.Time

	isConstructed bool
}

// RestoreCustomer reconstructs a customer from persistence.
// Name is required; phone and address may be empty.
func RestoreCustomer(id kernel.UUID, name, email, phone, address string, createdAt time.Time) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	return &Customer{
		id:            id,
		name:          name,
		email:         email,
		phone:         phone,
		address:       address,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the customer's contact email.
func (c *Customer) Email() string {
	return c.email
}

// Phone returns the customer's phone number ("" when absent).
func (c *Customer) Phone() string {
	return c.phone
}

// Address returns the customer's postal address ("" when absent).
func (c *Customer) Address() string {
	return c.address
}

// CreatedAt returns when the customer record was created.
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}
