package commands

import (
	"errors"

	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/errs"
	"oms/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request by a user to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(1, order.Intent{
//	    SecurityID:  1,
//	    Side:        order.Buy,
//	    Type:        order.Limit,
//	    Quantity:    decimal.NewFromInt(1000),
//	    LimitPrice:  optional.Of(decimal.RequireFromString("2500.00")),
//	    TimeInForce: order.Day,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	intent order.Intent

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand binds the intent to its owner. The caller-supplied user
// identifier is trusted; it only has to be positive.
func NewCreateOrderCommand(userID int64, intent order.Intent) (CreateOrderCommand, error) {
	if userID <= 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("userId")
	}

	intent.UserID = userID
	return CreateOrderCommand{
		intent: intent,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Intent returns the order intent including its owner.
func (c CreateOrderCommand) Intent() order.Intent {
	return c.intent
}
