// Package ports defines the persistence contracts of the order management service.
// These interfaces establish contracts between the application layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/optional"
)

// OrderFilter narrows an order search. Every criterion is optional and criteria are
// combined with logical AND. An absent UserID searches across all users.
type OrderFilter struct {
	UserID     optional.Value[int64]
	SecurityID optional.Value[int64]
	// Statuses matches any of the listed statuses; empty means no constraint.
	Statuses  []order.Status
	StartDate optional.Value[time.Time]
	EndDate   optional.Value[time.Time]
}

// OrderRepository defines the persistence contract for order aggregates.
// Every list operation returns orders by placed time, newest first.
type OrderRepository interface {
	// Add inserts a new order and assigns the store identifier to it.
	// A duplicate order number is reported as errs.ErrConflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
	// Read-modify-write operations must use it so that concurrent changes serialize.
	GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error)

	// FindByUserID returns all orders of a user.
	FindByUserID(ctx context.Context, userID int64) ([]*order.Order, error)

	// FindByUserIDAndStatusIn returns a user's orders in any of the given statuses.
	FindByUserIDAndStatusIn(ctx context.Context, userID int64, statuses []order.Status) ([]*order.Order, error)

	// FindByFilters returns the orders matching filter.
	FindByFilters(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// FindExpirable returns active orders whose validity ended before now.
	FindExpirable(ctx context.Context, now time.Time) ([]*order.Order, error)

	// CountPlacedBetween counts orders placed within [start, end].
	CountPlacedBetween(ctx context.Context, start time.Time, end time.Time) (int64, error)
}
