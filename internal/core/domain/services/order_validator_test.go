package services_test

import (
	"testing"

	"oms/internal/core/domain/model/order"
	"oms/internal/core/domain/services"
	"oms/internal/pkg/errs"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intentOf(orderType order.Type, price, stopPrice *string) order.Intent {
	intent := order.Intent{
		UserID:      1,
		SecurityID:  1,
		Side:        order.Buy,
		Type:        orderType,
		Quantity:    decimal.NewFromInt(1000),
		TimeInForce: order.Day,
	}
	if price != nil {
		intent.LimitPrice = optional.Of(decimal.RequireFromString(*price))
	}
	if stopPrice != nil {
		intent.StopPrice = optional.Of(decimal.RequireFromString(*stopPrice))
	}
	return intent
}

func ptr(s string) *string {
	return &s
}

func TestOrderValidator_Validate(t *testing.T) {
	validator := services.NewOrderValidator()

	testCases := []struct {
		name      string
		intent    order.Intent
		wantError string
	}{
		{"market without prices", intentOf(order.Market, nil, nil), ""},
		{"limit with price", intentOf(order.Limit, ptr("2500.00"), nil), ""},
		{"limit without price", intentOf(order.Limit, nil, nil), "Price is required for LIMIT orders"},
		{"limit with only stop price", intentOf(order.Limit, nil, ptr("10")), "Price is required for LIMIT orders"},
		{"stop with stop price", intentOf(order.Stop, nil, ptr("2400")), ""},
		{"stop without stop price", intentOf(order.Stop, ptr("2500"), nil), "Stop price is required for STOP orders"},
		{"stop limit with both", intentOf(order.StopLimit, ptr("2500"), ptr("2400")), ""},
		{"stop limit missing stop", intentOf(order.StopLimit, ptr("2500"), nil), "Both price and stop price are required"},
		{"stop limit missing price", intentOf(order.StopLimit, nil, ptr("2400")), "Both price and stop price are required"},
		{"stop limit missing both", intentOf(order.StopLimit, nil, nil), "Both price and stop price are required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Validate(tc.intent)

			if tc.wantError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
			assert.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Contains(t, err.Error(), tc.wantError)
		})
	}
}

func TestOrderValidator_Quantity(t *testing.T) {
	validator := services.NewOrderValidator()

	for _, q := range []int64{0, -1} {
		intent := intentOf(order.Market, nil, nil)
		intent.Quantity = decimal.NewFromInt(q)

		err := validator.Validate(intent)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Quantity must be greater than 0")
	}
}

func TestOrderValidator_CollectsAllViolations(t *testing.T) {
	intent := intentOf(order.Limit, nil, nil)
	intent.Quantity = decimal.Zero

	err := services.NewOrderValidator().Validate(intent)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "Price is required for LIMIT orders")
	assert.Contains(t, err.Error(), "Quantity must be greater than 0")
}

func TestOrderValidator_StoredPrecision(t *testing.T) {
	validator := services.NewOrderValidator()

	testCases := []struct {
		name      string
		quantity  string
		price     string
		stopPrice *string
		wantError string
	}{
		{"four places fit", "0.0001", "2500.1234", nil, ""},
		{"trailing zeros fit", "10.000000", "2500.50000", nil, ""},
		{"quantity with five places", "0.00001", "2500", nil, "quantity"},
		{"price with five places", "10", "0.00004", nil, "price"},
		{"stop price with five places", "10", "2500", ptr("2400.00001"), "stopPrice"},
		{"quantity at the limit", "100000000000000", "2500", nil, "quantity"},
		{"price just below the limit", "10", "99999999999999.9999", nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orderType := order.Limit
			if tc.stopPrice != nil {
				orderType = order.StopLimit
			}
			intent := intentOf(orderType, ptr(tc.price), tc.stopPrice)
			intent.Quantity = decimal.RequireFromString(tc.quantity)

			err := validator.Validate(intent)

			if tc.wantError == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tc.wantError)
		})
	}
}
