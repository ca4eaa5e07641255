// Package kernel contains the shared value objects of the domain model:
// identifiers and money. These types carry no behavior specific to any single
// aggregate and are safe to use across aggregate boundaries.
//
// All kernel types are immutable value objects. Identity types must be created
// through their factory functions; arithmetic types return new values from
// every operation.
package kernel
