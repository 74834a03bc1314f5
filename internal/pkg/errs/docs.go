// Package errs provides standardized error types for the order management service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types that map onto the service error taxonomy:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: caller input
//     violates an admission rule (validation errors, see IsValidation)
//   - ObjectNotFoundError: a referenced order does not exist
//   - IllegalStateError: the operation is not legal for the current order status
//   - ConflictError: a unique value (order number) is already taken in the store
//
// Any other error reaching the application layer is treated as a store failure.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works through errors.Join
package errs
