// Package order provides the Order aggregate of the order management service and the
// value types describing an order's intent and lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, intent, execution state and audit timestamps
//   - Status: the order status state machine with an explicit transition table
//   - Side, Type, TimeInForce: enumerations describing the order intent
//   - Changes: an explicit present/absent change set applied by ApplyChanges
//
// Key business rules:
//   - Orders are created in NEW with a filled quantity of zero
//   - Filled quantity never decreases and never exceeds the requested quantity
//   - The order number is assigned once and never changes
//   - Status transitions follow the transition table in status.go; FILLED and CANCELED
//     orders cannot be edited or canceled
//
// Remaining quantity and fill rate are derived on read and never stored.
package order
