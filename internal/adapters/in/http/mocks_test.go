package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "oms/internal/adapters/in/http"
	"oms/internal/core/application/usecases/commands"
	"oms/internal/core/application/usecases/queries"
	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/optional"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUpdater struct{ mock.Mock }

func (m *MockOrderUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderCanceler struct{ mock.Mock }

func (m *MockOrderCanceler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderGetter struct{ mock.Mock }

func (m *MockOrderGetter) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderResponse), args.Error(1)
}

type MockUserOrdersLister struct{ mock.Mock }

func (m *MockUserOrdersLister) Handle(
	ctx context.Context,
	query queries.ListUserOrdersQuery,
) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockActiveOrdersLister struct{ mock.Mock }

func (m *MockActiveOrdersLister) Handle(
	ctx context.Context,
	query queries.ListActiveOrdersQuery,
) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockOrdersLister struct{ mock.Mock }

func (m *MockOrdersLister) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type fixture struct {
	creator      *MockOrderCreator
	updater      *MockOrderUpdater
	canceler     *MockOrderCanceler
	getter       *MockOrderGetter
	userLister   *MockUserOrdersLister
	activeLister *MockActiveOrdersLister
	lister       *MockOrdersLister
	router       *echo.Echo
}

func newFixture(t *testing.T, cfg httpadapter.RouterConfig) *fixture {
	t.Helper()

	f := &fixture{
		creator:      &MockOrderCreator{},
		updater:      &MockOrderUpdater{},
		canceler:     &MockOrderCanceler{},
		getter:       &MockOrderGetter{},
		userLister:   &MockUserOrdersLister{},
		activeLister: &MockActiveOrdersLister{},
		lister:       &MockOrdersLister{},
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:      f.creator,
		UpdateOrder:      f.updater,
		CancelOrder:      f.canceler,
		GetOrder:         f.getter,
		ListUserOrders:   f.userLister,
		ListActiveOrders: f.activeLister,
		ListOrders:       f.lister,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router, err := httpadapter.NewRouter(server, cfg)
	require.NoError(t, err)
	f.router = router

	t.Cleanup(func() {
		f.creator.AssertExpectations(t)
		f.updater.AssertExpectations(t)
		f.canceler.AssertExpectations(t)
		f.getter.AssertExpectations(t)
		f.userLister.AssertExpectations(t)
		f.activeLister.AssertExpectations(t)
		f.lister.AssertExpectations(t)
	})

	return f
}

func (f *fixture) do(method string, target string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, env envelope, dest any) {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(string(env.Data)))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(dest))
}

var testNow = time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)

func restoredOrder(t *testing.T, id order.ID, status order.Status) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.Snapshot{
		Intent: order.Intent{
			UserID:      42,
			SecurityID:  7,
			Side:        order.Buy,
			Type:        order.Limit,
			Quantity:    decimal.NewFromInt(1000),
			LimitPrice:  optional.Of(decimal.RequireFromString("2500.50")),
			TimeInForce: order.Day,
		},
		ID:             id,
		Number:         "ORD20250314-0001",
		Status:         status,
		FilledQuantity: decimal.Zero,
		PlacedAt:       testNow,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	})
	require.NoError(t, err)
	return o
}

func orderResponse(t *testing.T, id order.ID) queries.OrderResponse {
	return queries.NewOrderResponse(restoredOrder(t, id, order.New))
}
