package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oms/internal/core/domain/model/order"
)

const maxDailySequence = 9999

// ErrDailySequenceExhausted is returned when a day already holds the maximum number of orders.
var ErrDailySequenceExhausted = errors.New("daily order sequence exhausted")

// DailyOrderCounter counts orders whose placed time falls within [start, end].
type DailyOrderCounter interface {
	CountPlacedBetween(ctx context.Context, start time.Time, end time.Time) (int64, error)
}

// OrderNumberGenerator produces ORD<YYYYMMDD>-<NNNN> order numbers, where NNNN is one
// more than the number of orders already placed on that calendar day.
//
// The count-then-format step is not atomic: concurrent creations on the same day can
// receive the same number. The store rejects the duplicate with errs.ErrConflict and the
// caller regenerates inside a fresh transaction.
type OrderNumberGenerator struct{}

func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{}
}

// Generate returns the next order number for the calendar day of now, in now's location.
func (g OrderNumberGenerator) Generate(
	ctx context.Context,
	counter DailyOrderCounter,
	now time.Time,
) (order.Number, error) {
	start, end := dayBounds(now)

	count, err := counter.CountPlacedBetween(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("count orders placed on %s: %w", start.Format(time.DateOnly), err)
	}

	sequence := count + 1
	if sequence > maxDailySequence {
		return "", fmt.Errorf("%w: %d orders already placed on %s", ErrDailySequenceExhausted, count, start.Format(time.DateOnly))
	}

	return order.Number(fmt.Sprintf("ORD%s-%04d", now.Format("20060102"), sequence)), nil
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
