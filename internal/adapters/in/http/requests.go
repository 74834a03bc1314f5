package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/errs"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

// timestampLayouts are tried in order. Layouts without an offset are read in the
// server's local time zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(param string, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not a date-time", value))
}

// Timestamp accepts ISO 8601 date-times with or without an offset.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseTimestamp("validUntil", raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t *Timestamp) value() optional.Value[time.Time] {
	if t == nil {
		return optional.None[time.Time]()
	}
	return optional.Of(t.Time)
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	SecurityID  *int64           `json:"securityId"`
	Side        string           `json:"side"`
	OrderType   string           `json:"orderType"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	StopPrice   *decimal.Decimal `json:"stopPrice"`
	TimeInForce *string          `json:"timeInForce"`
	ValidUntil  *Timestamp       `json:"validUntil"`
	Notes       *string          `json:"notes"`
}

// toIntent converts the request into an order intent without an owner.
// A missing time in force defaults to DAY.
func (r CreateOrderRequest) toIntent() (order.Intent, error) {
	var (
		intent     order.Intent
		violations []error
	)

	if r.SecurityID == nil {
		violations = append(violations, errs.NewValueIsRequiredError("securityId"))
	} else {
		intent.SecurityID = *r.SecurityID
	}

	if r.Side == "" {
		violations = append(violations, errs.NewValueIsRequiredError("side"))
	} else if side, err := order.ParseSide(r.Side); err != nil {
		violations = append(violations, err)
	} else {
		intent.Side = side
	}

	if r.OrderType == "" {
		violations = append(violations, errs.NewValueIsRequiredError("orderType"))
	} else if orderType, err := order.ParseType(r.OrderType); err != nil {
		violations = append(violations, err)
	} else {
		intent.Type = orderType
	}

	if r.Quantity == nil {
		violations = append(violations, errs.NewValueIsRequiredError("quantity"))
	} else {
		intent.Quantity = *r.Quantity
	}

	intent.TimeInForce = order.Day
	if r.TimeInForce != nil {
		tif, err := order.ParseTimeInForce(*r.TimeInForce)
		if err != nil {
			violations = append(violations, err)
		}
		intent.TimeInForce = tif
	}

	if err := errors.Join(violations...); err != nil {
		return order.Intent{}, err
	}

	intent.LimitPrice = optional.FromPtr(r.Price)
	intent.StopPrice = optional.FromPtr(r.StopPrice)
	intent.ValidUntil = r.ValidUntil.value()
	intent.Notes = optional.FromPtr(r.Notes)
	return intent, nil
}

// UpdateOrderRequest is the body of PUT /api/orders/{id}. Omitted and null fields
// are left unchanged.
type UpdateOrderRequest struct {
	Quantity    *decimal.Decimal `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	StopPrice   *decimal.Decimal `json:"stopPrice"`
	TimeInForce *string          `json:"timeInForce"`
	ValidUntil  *Timestamp       `json:"validUntil"`
	Notes       *string          `json:"notes"`
}

func (r UpdateOrderRequest) toChanges() (order.Changes, error) {
	changes := order.Changes{
		Quantity:   optional.FromPtr(r.Quantity),
		LimitPrice: optional.FromPtr(r.Price),
		StopPrice:  optional.FromPtr(r.StopPrice),
		ValidUntil: r.ValidUntil.value(),
		Notes:      optional.FromPtr(r.Notes),
	}

	if r.TimeInForce != nil {
		tif, err := order.ParseTimeInForce(*r.TimeInForce)
		if err != nil {
			return order.Changes{}, err
		}
		changes.TimeInForce = optional.Of(tif)
	}

	return changes, nil
}

// parseStatuses accepts repeated and comma separated status values.
func parseStatuses(values []string) ([]order.Status, error) {
	var (
		statuses   []order.Status
		violations []error
	)
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			status, err := order.ParseStatus(name)
			if err != nil {
				violations = append(violations, err)
				continue
			}
			statuses = append(statuses, status)
		}
	}
	if err := errors.Join(violations...); err != nil {
		return nil, err
	}
	return statuses, nil
}
