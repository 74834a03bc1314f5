package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"oms/internal/core/domain/model/order"
	"oms/internal/core/domain/services"
	"oms/internal/pkg/errs"
)

// DefaultOrderNumberAttempts bounds how often Create regenerates a colliding order number.
const DefaultOrderNumberAttempts = 3

// CreateOrderCommandHandler admits and persists new orders.
//
// The flow is validator, order construction, order number generation, insert. When the
// store reports the order number as taken, the whole unit of work is retried with a
// freshly counted number, at most maxAttempts times. Any other failure is final.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	validator   services.OrderValidator
	numbers     services.OrderNumberGenerator
	clock       Clock
	maxAttempts int
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A non-positive maxAttempts falls back to DefaultOrderNumberAttempts.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock Clock,
	maxAttempts int,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultOrderNumberAttempts
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		validator:   services.NewOrderValidator(),
		numbers:     services.NewOrderNumberGenerator(),
		clock:       clock,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "create_order_handler"),
	}
}

// Handle validates the command and stores a NEW order with a unique order number.
// Validation errors are returned before the store is touched.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.validator.Validate(cmd.Intent()); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		created, err := h.create(ctx, cmd)
		if err == nil {
			h.logger.InfoContext(ctx, "Order created",
				"order_id", created.ID(), "order_no", created.Number(), "user_id", created.UserID())
			return created, nil
		}

		if !errors.Is(err, errs.ErrConflict) {
			logFailure(ctx, h.logger, "Order creation failed", err,
				"user_id", cmd.Intent().UserID, "attempt", attempt)
			return nil, err
		}

		if attempt >= h.maxAttempts {
			h.logger.ErrorContext(ctx, "Order number collisions exhausted retries",
				"user_id", cmd.Intent().UserID, "attempts", attempt, "error", err)
			return nil, fmt.Errorf("assign order number after %d attempts: %w", attempt, err)
		}

		h.logger.WarnContext(ctx, "Order number collision, retrying",
			"user_id", cmd.Intent().UserID, "attempt", attempt, "error", err)
	}
}

func (h *CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock()
	created, err := order.NewOrder(cmd.Intent(), now)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	number, err := h.numbers.Generate(ctx, orderRepo, now)
	if err != nil {
		return nil, err
	}

	if err = created.AssignNumber(number); err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
