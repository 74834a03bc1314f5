package queries

import (
	"time"

	"oms/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderResponse is the read model of an order, including derived quantities.
// Absent optional values are nil.
type OrderResponse struct {
	ID             int64
	OrderNo        string
	UserID         int64
	SecurityID     int64
	Side           string
	OrderType      string
	Quantity       decimal.Decimal
	Price          *decimal.Decimal
	StopPrice      *decimal.Decimal
	Status         string
	FilledQuantity decimal.Decimal
	AveragePrice   *decimal.Decimal
	Commission     *decimal.Decimal
	TimeInForce    string
	ValidUntil     *time.Time
	Notes          *string
	PlacedAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	RemainingQuantity decimal.Decimal
	// FillRate is the filled share of the quantity in percent, rounded to 4 decimal places.
	FillRate decimal.Decimal
}

// NewOrderResponse maps an order aggregate to its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                int64(o.ID()),
		OrderNo:           o.Number().String(),
		UserID:            o.UserID(),
		SecurityID:        o.SecurityID(),
		Side:              o.Side().String(),
		OrderType:         o.Type().String(),
		Quantity:          o.Quantity(),
		Price:             o.LimitPrice().Ptr(),
		StopPrice:         o.StopPrice().Ptr(),
		Status:            o.Status().String(),
		FilledQuantity:    o.FilledQuantity(),
		AveragePrice:      o.AveragePrice().Ptr(),
		Commission:        o.Commission().Ptr(),
		TimeInForce:       o.TimeInForce().String(),
		ValidUntil:        o.ValidUntil().Ptr(),
		Notes:             o.Notes().Ptr(),
		PlacedAt:          o.PlacedAt(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
		RemainingQuantity: o.RemainingQuantity(),
		FillRate:          o.FillRate(),
	}
}

// NewOrderResponses maps orders preserving their order.
func NewOrderResponses(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses
}

