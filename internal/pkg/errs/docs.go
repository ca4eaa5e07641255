// Package errs provides standardized error types for the order management application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure class:
//   - ObjectNotFoundError: a referenced customer, vendor, order, or item does not exist
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed input
//   - InvalidStateError: a business rule rejects the operation in the current state
//   - UnavailableError: an infrastructure dependency (cache, event feed, external
//     service) failed; never a business rejection
//   - ConcurrencyConflictError: the stored aggregate version advanced since load
//   - VersionIsInvalidError: a version value is malformed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound) the type unwraps to
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Callers branch on failure class with errors.Is against the sentinels; the HTTP
// adapter maps the same sentinels to status codes. Nothing in the application
// matches on error strings.
package errs
