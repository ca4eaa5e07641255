package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order. It implements a
// state machine with defined transitions so orders follow the correct business
// workflow: only pending orders are mutable, and terminal states stay terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status. Items may be added, removed, and
	// requantified only while the order is Pending.
	Pending

	// Confirmed indicates the order has been confirmed with at least one item.
	// Items can no longer be modified.
	Confirmed

	// InProgress is declared for fulfillment tracking. No operation currently
	// transitions an order into it.
	InProgress

	// Completed indicates the order has been fulfilled. Terminal: completed
	// orders cannot be modified or cancelled.
	Completed

	// Cancelled indicates the order was cancelled before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// StatusFromString parses a status name as used in persistence and API filters.
// Returns a ValueIsInvalidError for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the declared values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown"
// for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsMutable reports whether order items may be modified in this status.
// Only Pending orders are mutable.
func (s Status) IsMutable() bool {
	return s == Pending
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Any other source status fails with an InvalidStateError. The "order must
// hold at least one item" rule belongs to the aggregate, not the machine.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"order is already confirmed or cancelled",
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}

	return Confirmed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled
//   - InProgress -> Cancelled
//
// Completed orders cannot be cancelled and fail with an InvalidStateError.
func (s Status) Cancel() (Status, error) {
	if s == Completed {
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"cannot cancel completed orders",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}

	return Cancelled, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Confirmed -> Completed
//
// No operation invokes this yet: the trigger (fulfillment completion) is not
// defined in the current product scope. The rule lives here so the transition
// has a single home when it lands.
func (s Status) Complete() (Status, error) {
	if s != Confirmed {
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"only confirmed orders can be completed",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}
