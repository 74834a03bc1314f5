package order

import (
	"fmt"
	"regexp"

	"oms/internal/pkg/errs"
)

// Number is the human-readable order identifier, formatted ORD<YYYYMMDD>-<NNNN>.
type Number string

var numberPattern = regexp.MustCompile(`^ORD\d{8}-\d{4}$`)

func (n Number) Validate() error {
	if n == "" {
		return errs.NewValueIsRequiredError("orderNo")
	}
	if !numberPattern.MatchString(string(n)) {
		return errs.NewValueIsInvalidErrorWithCause("orderNo", fmt.Errorf("%q does not match ORDYYYYMMDD-NNNN", string(n)))
	}
	return nil
}

func (n Number) String() string {
	return string(n)
}
