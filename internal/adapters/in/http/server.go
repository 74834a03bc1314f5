package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"oms/internal/core/application/usecases/commands"
	"oms/internal/core/application/usecases/queries"
	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/errs"
	"oms/internal/pkg/optional"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// defaultUserID owns orders created without an explicit userId.
const defaultUserID int64 = 1

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	OrderCanceler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}
	UserOrdersLister interface {
		Handle(ctx context.Context, query queries.ListUserOrdersQuery) ([]queries.OrderResponse, error)
	}
	ActiveOrdersLister interface {
		Handle(ctx context.Context, query queries.ListActiveOrdersQuery) ([]queries.OrderResponse, error)
	}
	OrdersLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder OrderCreator
	UpdateOrder OrderUpdater
	CancelOrder OrderCanceler

	// Query handlers
	GetOrder         OrderGetter
	ListUserOrders   UserOrdersLister
	ListActiveOrders ActiveOrdersLister
	ListOrders       OrdersLister
}

// Server translates HTTP requests into commands and queries and renders their
// results in the response envelope.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var userID *int64
	if err := runtime.BindQueryParameter("form", true, false, "userId", ctx.QueryParams(), &userID); err != nil {
		return writeError(ctx, s.logger, errs.NewValueIsInvalidErrorWithCause("userId", err))
	}

	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, s.logger, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	intent, err := body.toIntent()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCreateOrderCommand(optional.FromPtr(userID).OrElse(defaultUserID), intent)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, success(newOrder(queries.NewOrderResponse(created)), "Order created"))
}

// GetOrder handles GET /api/orders/{id} - retrieves a single order.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	found, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, success(newOrder(found), ""))
}

// ListOrders handles GET /api/orders. A request carrying only userId lists the
// user's orders; any other combination of filters is a criteria search.
func (s *Server) ListOrders(ctx echo.Context) error {
	var (
		userID, securityID *int64
		statusValues       *[]string
		startRaw, endRaw   *string
	)
	params := ctx.QueryParams()
	for _, bind := range []struct {
		name string
		dest any
	}{
		{"userId", &userID},
		{"securityId", &securityID},
		{"statuses", &statusValues},
		{"startDate", &startRaw},
		{"endDate", &endRaw},
	} {
		if err := runtime.BindQueryParameter("form", true, false, bind.name, params, bind.dest); err != nil {
			return writeError(ctx, s.logger, errs.NewValueIsInvalidErrorWithCause(bind.name, err))
		}
	}

	statuses, err := parseStatuses(optional.FromPtr(statusValues).OrElse(nil))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	startDate, err := parseOptionalTimestamp("startDate", startRaw)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	endDate, err := parseOptionalTimestamp("endDate", endRaw)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	onlyUser := userID != nil && securityID == nil && len(statuses) == 0 &&
		!startDate.IsPresent() && !endDate.IsPresent()

	var found []queries.OrderResponse
	if onlyUser {
		found, err = s.listUserOrders(ctx.Request().Context(), *userID)
	} else {
		found, err = s.listOrders(ctx.Request().Context(),
			optional.FromPtr(userID), optional.FromPtr(securityID), statuses, startDate, endDate)
	}
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, success(newOrders(found), ""))
}

func (s *Server) listUserOrders(ctx context.Context, userID int64) ([]queries.OrderResponse, error) {
	query, err := queries.NewListUserOrdersQuery(userID)
	if err != nil {
		return nil, err
	}
	return s.handlers.ListUserOrders.Handle(ctx, query)
}

func (s *Server) listOrders(
	ctx context.Context,
	userID optional.Value[int64],
	securityID optional.Value[int64],
	statuses []order.Status,
	startDate optional.Value[time.Time],
	endDate optional.Value[time.Time],
) ([]queries.OrderResponse, error) {
	query, err := queries.NewListOrdersQuery(userID, securityID, statuses, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.handlers.ListOrders.Handle(ctx, query)
}

// ListActiveOrders handles GET /api/orders/active - lists a user's NEW and PARTIAL orders.
func (s *Server) ListActiveOrders(ctx echo.Context) error {
	var userID int64
	if err := runtime.BindQueryParameter("form", true, true, "userId", ctx.QueryParams(), &userID); err != nil {
		return writeError(ctx, s.logger, errs.NewValueIsRequiredErrorWithCause("userId", err))
	}

	query, err := queries.NewListActiveOrdersQuery(userID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	found, err := s.handlers.ListActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, success(newOrders(found), ""))
}

// UpdateOrder handles PUT /api/orders/{id} - changes the editable fields of an open order.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body UpdateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, s.logger, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	changes, err := body.toChanges()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(id, changes)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	updated, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, success(newOrder(queries.NewOrderResponse(updated)), "Order updated"))
}

// CancelOrder handles DELETE /api/orders/{id} - cancels an order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	canceled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, success(newOrder(queries.NewOrderResponse(canceled)), "Order cancelled"))
}

func bindOrderID(ctx echo.Context) (order.ID, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return order.ID(id), nil
}

func parseOptionalTimestamp(param string, raw *string) (optional.Value[time.Time], error) {
	if raw == nil {
		return optional.None[time.Time](), nil
	}
	t, err := parseTimestamp(param, *raw)
	if err != nil {
		return optional.None[time.Time](), err
	}
	return optional.Of(t), nil
}
