package commands

import (
	"context"
	"log/slog"

	"oms/internal/core/domain/model/order"
)

// CancelOrderCommandHandler moves orders to CANCELED status.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(orderID)
//	if err != nil {
//	    return err
//	}
//
//	canceled, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrIllegalState) {
//	    // the order is filled or already canceled
//	}
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle cancels the order under a row lock and returns it in its new state.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	canceled, err := h.cancel(ctx, cmd)
	if err != nil {
		logFailure(ctx, h.logger, "Order cancellation failed", err, "order_id", cmd.OrderID())
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order canceled", "order_id", canceled.ID(), "order_no", canceled.Number())
	return canceled, nil
}

func (h *CancelOrderCommandHandler) cancel(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = existing.Cancel(h.clock()); err != nil {
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
