package commands

import (
	"context"
	"log/slog"

	"oms/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler applies partial changes to orders that are still editable.
// The order row stays locked from load to commit, so concurrent updates and
// cancellations of the same order serialize instead of overwriting each other.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock, logger *slog.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "update_order_handler"),
	}
}

// Handle loads the order, applies the changes and persists the result.
// Orders in FILLED or CANCELED status are rejected with errs.ErrIllegalState.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.update(ctx, cmd)
	if err != nil {
		logFailure(ctx, h.logger, "Order update failed", err, "order_id", cmd.OrderID())
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order updated", "order_id", updated.ID(), "order_no", updated.Number())
	return updated, nil
}

func (h *UpdateOrderCommandHandler) update(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = existing.ApplyChanges(cmd.Changes(), h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}
