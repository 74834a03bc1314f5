package commands

import (
	"errors"

	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand carries a partial modification of an active order.
// Absent fields keep their stored values.
type UpdateOrderCommand struct {
	orderID order.ID
	changes order.Changes

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates an update command for the given order.
func NewUpdateOrderCommand(orderID order.ID, changes order.Changes) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID: orderID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c UpdateOrderCommand) Changes() order.Changes {
	return c.changes
}
