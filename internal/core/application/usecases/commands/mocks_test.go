package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"oms/internal/core/application/usecases/commands"
	"oms/internal/core/domain/model/order"
	"oms/internal/core/ports"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID int64) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserIDAndStatusIn(
	ctx context.Context,
	userID int64,
	statuses []order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByFilters(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindExpirable(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountPlacedBetween(ctx context.Context, start time.Time, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

var testNow = time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func limitIntent() order.Intent {
	return order.Intent{
		SecurityID:  7,
		Side:        order.Buy,
		Type:        order.Limit,
		Quantity:    decimal.NewFromInt(1000),
		LimitPrice:  optional.Of(decimal.RequireFromString("2500.00")),
		TimeInForce: order.Day,
	}
}

// storedOrder returns an order as the store would hand it out.
func storedOrder(t testing.TB, id order.ID, status order.Status) *order.Order {
	intent := limitIntent()
	intent.UserID = 1
	intent.ValidUntil = optional.Of(testNow.Add(-time.Hour))

	filled := decimal.Zero
	if status == order.Partial {
		filled = decimal.NewFromInt(100)
	}

	o, err := order.RestoreOrder(order.Snapshot{
		Intent:         intent,
		ID:             id,
		Number:         "ORD20250314-0001",
		Status:         status,
		FilledQuantity: filled,
		PlacedAt:       testNow.Add(-2 * time.Hour),
		CreatedAt:      testNow.Add(-2 * time.Hour),
		UpdatedAt:      testNow.Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	return o
}
