package order

import (
	"errors"
	"fmt"

	"oms/internal/pkg/errs"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places stored for quantities and prices.
const AmountPlaces = 4

// amountLimit bounds the absolute value of a stored amount (numeric(18,4)).
var amountLimit = decimal.New(1, 14)

// ValidateAmount checks that v is representable in storage: at most AmountPlaces
// decimal places and an absolute value below 10^14.
func ValidateAmount(param string, v decimal.Decimal) error {
	var violations []error
	if !v.Equal(v.Truncate(AmountPlaces)) {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause(param,
			fmt.Errorf("%s has more than %d decimal places", v, AmountPlaces)))
	}
	if v.Abs().GreaterThanOrEqual(amountLimit) {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause(param,
			fmt.Errorf("%s is not below %s in absolute value", v, amountLimit)))
	}
	return errors.Join(violations...)
}

func validateOptionalAmount(param string, v optional.Value[decimal.Decimal]) error {
	if d, ok := v.Get(); ok {
		return ValidateAmount(param, d)
	}
	return nil
}
