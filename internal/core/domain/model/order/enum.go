package order

import (
	"fmt"
	"strings"

	"oms/internal/pkg/errs"
)

type enum interface {
	~int
	String() string
}

func parseEnum[T enum](s string, names map[T]string, param string) (T, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for value, name := range names {
		if name == needle {
			return value, nil
		}
	}
	var zero T
	return zero, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not a valid %s", s, param))
}

func validateEnum[T enum](v T, names map[T]string, param string) error {
	if _, ok := names[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is not a valid %s", int(v), param))
	}
	return nil
}
