package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"oms/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDailyOrderCounter struct{ mock.Mock }

func (m *MockDailyOrderCounter) CountPlacedBetween(ctx context.Context, start time.Time, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

// fakeDay counts the numbers it has handed out, like a store that persists every order.
type fakeDay struct {
	placed int64
}

func (f *fakeDay) CountPlacedBetween(_ context.Context, _ time.Time, _ time.Time) (int64, error) {
	return f.placed, nil
}

var numberFormat = regexp.MustCompile(`^ORD\d{8}-\d{4}$`)

func TestOrderNumberGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)
	generator := services.NewOrderNumberGenerator()

	t.Run("first order of the day", func(t *testing.T) {
		counter := new(MockDailyOrderCounter)
		counter.On("CountPlacedBetween", ctx,
			time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 14, 23, 59, 59, 999999999, time.UTC),
		).Return(int64(0), nil).Once()

		number, err := generator.Generate(ctx, counter, now)

		require.NoError(t, err)
		assert.Equal(t, "ORD20250314-0001", number.String())
		assert.Regexp(t, numberFormat, number.String())
		counter.AssertExpectations(t)
	})

	t.Run("sequence follows the daily count", func(t *testing.T) {
		counter := new(MockDailyOrderCounter)
		counter.On("CountPlacedBetween", ctx, mock.Anything, mock.Anything).Return(int64(41), nil).Once()

		number, err := generator.Generate(ctx, counter, now)

		require.NoError(t, err)
		assert.Equal(t, "ORD20250314-0042", number.String())
	})

	t.Run("same day numbers strictly increase", func(t *testing.T) {
		day := &fakeDay{}
		previous := ""
		for range 12 {
			number, err := generator.Generate(ctx, day, now)
			require.NoError(t, err)
			require.NoError(t, number.Validate())
			assert.Greater(t, number.String(), previous)
			previous = number.String()
			day.placed++
		}
		assert.Equal(t, "ORD20250314-0012", previous)
	})

	t.Run("uses the location of now for the calendar day", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		late := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC).In(tokyo)

		number, err := generator.Generate(ctx, &fakeDay{}, late)

		require.NoError(t, err)
		assert.Equal(t, "ORD20250315-0001", number.String())
	})

	t.Run("counter failure is propagated", func(t *testing.T) {
		counter := new(MockDailyOrderCounter)
		storeErr := errors.New("connection refused")
		counter.On("CountPlacedBetween", ctx, mock.Anything, mock.Anything).Return(int64(0), storeErr).Once()

		_, err := generator.Generate(ctx, counter, now)

		require.ErrorIs(t, err, storeErr)
	})

	t.Run("sequence beyond four digits is refused", func(t *testing.T) {
		_, err := generator.Generate(ctx, &fakeDay{placed: 9999}, now)

		require.ErrorIs(t, err, services.ErrDailySequenceExhausted)
	})
}
