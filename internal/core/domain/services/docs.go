// Package services provides domain services of the order management service: business
// rules that act on orders but do not belong to the Order aggregate itself.
//
// The package includes:
//   - OrderValidator: admission rules checked before an order is accepted
//   - OrderNumberGenerator: date-scoped human-readable order numbers
package services
