package queries_test

import (
	"context"
	"testing"
	"time"

	"oms/internal/core/domain/model/order"
	"oms/internal/core/ports"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindByUserID(ctx context.Context, userID int64) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindByUserIDAndStatusIn(
	ctx context.Context,
	userID int64,
	statuses []order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindByFilters(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Error(1)
}

var placedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func restoredOrder(t testing.TB, id order.ID, status order.Status, filled string) *order.Order {
	o, err := order.RestoreOrder(order.Snapshot{
		Intent: order.Intent{
			UserID:      1,
			SecurityID:  7,
			Side:        order.Sell,
			Type:        order.Limit,
			Quantity:    decimal.NewFromInt(1000),
			LimitPrice:  optional.Of(decimal.RequireFromString("2500.00")),
			TimeInForce: order.GoodTillCanceled,
		},
		ID:             id,
		Number:         "ORD20250314-0001",
		Status:         status,
		FilledQuantity: decimal.RequireFromString(filled),
		PlacedAt:       placedAt,
		CreatedAt:      placedAt,
		UpdatedAt:      placedAt,
	})
	require.NoError(t, err)
	return o
}
