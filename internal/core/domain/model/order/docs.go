// Package order contains the purchase order aggregate: the Order root, its
// OrderItem entities, and the Status state machine.
//
// The aggregate is the single consistency boundary of the write path. Items are
// created, changed, and removed only through the root, and the order total is
// recomputed synchronously on every item mutation, so the invariant
// "total equals the sum of line totals" holds after every exported operation.
//
// Status transitions:
//
//	Pending ──┬──> Confirmed ──┬──> Completed
//	          │                │
//	          └──> Cancelled <─┘
//
// Completed and Cancelled are terminal. InProgress is a declared status with no
// transition into it, and nothing currently drives Confirmed to Completed; see
// Status.Complete.
package order
