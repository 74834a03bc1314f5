package queries

import (
	"context"
)

// ListUserOrdersQueryHandler returns a user's orders, newest first.
type ListUserOrdersQueryHandler struct {
	orders OrderReader
}

func NewListUserOrdersQueryHandler(orders OrderReader) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{orders: orders}
}

// Handle returns an empty slice when the user has no orders.
func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.orders.FindByUserID(ctx, query.UserID())
	if err != nil {
		return nil, err
	}

	return NewOrderResponses(found), nil
}
