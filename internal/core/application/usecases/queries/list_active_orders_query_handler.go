package queries

import (
	"context"

	"oms/internal/core/domain/model/order"
)

// ListActiveOrdersQueryHandler returns a user's active orders, newest first.
type ListActiveOrdersQueryHandler struct {
	orders OrderReader
}

func NewListActiveOrdersQueryHandler(orders OrderReader) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{orders: orders}
}

func (h ListActiveOrdersQueryHandler) Handle(ctx context.Context, query ListActiveOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.orders.FindByUserIDAndStatusIn(ctx, query.UserID(), order.ActiveStatuses())
	if err != nil {
		return nil, err
	}

	return NewOrderResponses(found), nil
}
