package queries

import (
	"errors"

	"oms/internal/pkg/errs"
	"oms/internal/pkg/guard"
)

var (
	ErrListActiveOrdersQueryIsNotConstructed = errors.New(
		"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
	)
)

// ListActiveOrdersQuery lists a user's orders that can still execute (NEW or PARTIAL).
type ListActiveOrdersQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewListActiveOrdersQuery(userID int64) (ListActiveOrdersQuery, error) {
	if userID <= 0 {
		return ListActiveOrdersQuery{}, errs.NewValueIsRequiredError("userId")
	}
	return ListActiveOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

func (q ListActiveOrdersQuery) UserID() int64 {
	return q.userID
}
