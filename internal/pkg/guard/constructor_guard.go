// Package guard provides the constructor-guard pattern used by commands, queries,
// and value objects to reject zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil
// validation error, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their designated constructor
// from zero values. Embed one as a private field and set it via NewConstructorGuard
// inside the constructor; any zero-value instance then fails Validate.
//
// Example:
//
//	type AddOrderItemCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewAddOrderItemCommand(orderID kernel.UUID) (AddOrderItemCommand, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return AddOrderItemCommand{}, err
//	    }
//	    return AddOrderItemCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the enclosing object was built via its constructor.
// For zero-value objects it returns validationError, or ErrDefaultConstructorGuard
// when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
