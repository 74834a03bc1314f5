package services

import (
	"errors"
	"fmt"

	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/errs"
)

// OrderValidator enforces admission rules on a creation request. It performs no I/O.
//
// Rules, all evaluated and reported together:
//   - LIMIT orders carry a limit price
//   - STOP orders carry a stop price
//   - STOP_LIMIT orders carry both prices
//   - quantity is strictly greater than zero
//   - quantity and prices have at most 4 decimal places and stay below 10^14
type OrderValidator struct{}

func NewOrderValidator() OrderValidator {
	return OrderValidator{}
}

// Validate returns nil when intent may be admitted, or the joined validation errors.
func (v OrderValidator) Validate(intent order.Intent) error {
	var violations []error

	hasPrice := intent.LimitPrice.IsPresent()
	hasStopPrice := intent.StopPrice.IsPresent()

	switch intent.Type { //nolint:exhaustive // MARKET needs no price
	case order.Limit:
		if !hasPrice {
			violations = append(violations, errs.NewValueIsRequiredErrorWithCause(
				"price", errors.New("Price is required for LIMIT orders")))
		}
	case order.Stop:
		if !hasStopPrice {
			violations = append(violations, errs.NewValueIsRequiredErrorWithCause(
				"stopPrice", errors.New("Stop price is required for STOP orders")))
		}
	case order.StopLimit:
		if !hasPrice || !hasStopPrice {
			violations = append(violations, errs.NewValueIsRequiredErrorWithCause(
				"price", errors.New("Both price and stop price are required for STOP_LIMIT orders")))
		}
	}

	if !intent.Quantity.IsPositive() {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("Quantity must be greater than 0, got %s", intent.Quantity)))
	}

	violations = append(violations, order.ValidateAmount("quantity", intent.Quantity))
	if price, ok := intent.LimitPrice.Get(); ok {
		violations = append(violations, order.ValidateAmount("price", price))
	}
	if stopPrice, ok := intent.StopPrice.Get(); ok {
		violations = append(violations, order.ValidateAmount("stopPrice", stopPrice))
	}

	return errors.Join(violations...)
}
