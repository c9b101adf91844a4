// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the system:
//   - ValueIsRequiredError / ValueIsInvalidError: client-correctable input problems
//   - ValueIsOutOfRangeError: numeric input outside its allowed bounds
//   - ObjectNotFoundError: unknown order identifiers
//   - StatusIsInvalidError: a status target outside the lifecycle enum
//   - TransitionForbiddenError: an illegal or unauthorized status transition
//   - TransportUnavailableError: a broker publish attempted while disconnected
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Persistence failures are not modelled here: the adapters wrap and return
// the driver errors directly, and the HTTP layer treats anything outside this
// taxonomy as a server-side failure.
package errs
