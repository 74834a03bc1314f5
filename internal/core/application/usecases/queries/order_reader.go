// Package queries contains read-only operations over orders.
// Implements the Query side of the CQRS architecture: handlers never modify state.
package queries

import (
	"context"

	"oms/internal/core/domain/model/order"
	"oms/internal/core/ports"
)

// OrderReader is the read subset of ports.OrderRepository used by query handlers.
type OrderReader interface {
	Get(ctx context.Context, id order.ID) (*order.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]*order.Order, error)
	FindByUserIDAndStatusIn(ctx context.Context, userID int64, statuses []order.Status) ([]*order.Order, error)
	FindByFilters(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error)
}
