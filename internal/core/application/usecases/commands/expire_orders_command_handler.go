package commands

import (
	"context"
	"log/slog"
)

// ExpireOrdersCommandHandler moves every active order whose valid-until time has
// passed to EXPIRED status. All expirations of one run share a transaction.
//
// Example:
//
//	handler := NewExpireOrdersCommandHandler(uowFactory, time.Now, logger)
//
//	// This would typically be called periodically by a scheduler
//	expired, err := handler.Handle(ctx, NewExpireOrdersCommand())
type ExpireOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewExpireOrdersCommandHandler(uowFactory OrderUoWFactory, clock Clock, logger *slog.Logger) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "expire_orders_handler"),
	}
}

// Handle returns the number of orders that were expired.
func (h *ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := h.clock()

	orders, err := orderRepo.FindExpirable(ctx, now)
	if err != nil {
		return 0, err
	}

	if len(orders) == 0 {
		return 0, nil
	}

	for _, o := range orders {
		if err = o.Expire(now); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}

		h.logger.DebugContext(ctx, "Order expired", "order_id", o.ID(), "order_no", o.Number())
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "Orders expired", "count", len(orders))
	return len(orders), nil
}
