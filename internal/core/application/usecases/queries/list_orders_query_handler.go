package queries

import (
	"context"
)

// ListOrdersQueryHandler runs filtered order searches. Results are ordered by placed
// time, newest first; an empty match is an empty slice.
type ListOrdersQueryHandler struct {
	orders OrderReader
}

func NewListOrdersQueryHandler(orders OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.orders.FindByFilters(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	return NewOrderResponses(found), nil
}
