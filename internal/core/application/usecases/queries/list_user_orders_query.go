package queries

import (
	"errors"

	"oms/internal/pkg/errs"
	"oms/internal/pkg/guard"
)

var (
	ErrListUserOrdersQueryIsNotConstructed = errors.New(
		"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
	)
)

// ListUserOrdersQuery lists every order of one user.
type ListUserOrdersQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewListUserOrdersQuery(userID int64) (ListUserOrdersQuery, error) {
	if userID <= 0 {
		return ListUserOrdersQuery{}, errs.NewValueIsRequiredError("userId")
	}
	return ListUserOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

func (q ListUserOrdersQuery) UserID() int64 {
	return q.userID
}
