package queries

import (
	"errors"
	"fmt"
	"time"

	"oms/internal/core/domain/model/order"
	"oms/internal/core/ports"
	"oms/internal/pkg/errs"
	"oms/internal/pkg/guard"
	"oms/internal/pkg/optional"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery searches orders by any combination of owner, security, statuses
// and placed-time range. Without an owner the search spans all users.
//
// Example:
//
//	query, err := NewListOrdersQuery(
//	    optional.Of[int64](1),
//	    optional.None[int64](),
//	    []order.Status{order.New, order.Partial},
//	    optional.Of(from),
//	    optional.None[time.Time](),
//	)
type ListOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the criteria. Identifiers must be positive, statuses
// must be known and the start date must not be after the end date.
func NewListOrdersQuery(
	userID optional.Value[int64],
	securityID optional.Value[int64],
	statuses []order.Status,
	startDate optional.Value[time.Time],
	endDate optional.Value[time.Time],
) (ListOrdersQuery, error) {
	validations := []error{
		validateOptionalID("userId", userID),
		validateOptionalID("securityId", securityID),
	}
	for _, s := range statuses {
		validations = append(validations, s.Validate())
	}

	start, hasStart := startDate.Get()
	end, hasEnd := endDate.Get()
	if hasStart && hasEnd && start.After(end) {
		validations = append(validations, errs.NewValueIsInvalidErrorWithCause("startDate",
			fmt.Errorf("%s is after endDate %s", start.Format(time.RFC3339), end.Format(time.RFC3339))))
	}

	if err := errors.Join(validations...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		filter: ports.OrderFilter{
			UserID:     userID,
			SecurityID: securityID,
			Statuses:   statuses,
			StartDate:  startDate,
			EndDate:    endDate,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}

func validateOptionalID(param string, id optional.Value[int64]) error {
	if v, ok := id.Get(); ok && v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is not greater than 0", v))
	}
	return nil
}
