package order

import (
	"time"

	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

// Changes is a partial update of an order. Only present fields are applied;
// there is no way to clear a field through Changes.
type Changes struct {
	Quantity    optional.Value[decimal.Decimal]
	LimitPrice  optional.Value[decimal.Decimal]
	StopPrice   optional.Value[decimal.Decimal]
	TimeInForce optional.Value[TimeInForce]
	ValidUntil  optional.Value[time.Time]
	Notes       optional.Value[string]
}

// IsEmpty reports whether no field is present.
func (c Changes) IsEmpty() bool {
	return !c.Quantity.IsPresent() &&
		!c.LimitPrice.IsPresent() &&
		!c.StopPrice.IsPresent() &&
		!c.TimeInForce.IsPresent() &&
		!c.ValidUntil.IsPresent() &&
		!c.Notes.IsPresent()
}
