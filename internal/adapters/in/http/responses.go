package http

import (
	"encoding/json"
	"time"

	"oms/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// Envelope wraps every API response.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func success(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

func failure(message string, errors ...string) Envelope {
	return Envelope{Success: false, Message: message, Errors: errors}
}

// Order is the JSON representation of an order. Decimal amounts are written as
// JSON numbers without losing precision.
type Order struct {
	OrderID           int64        `json:"orderId"`
	OrderNo           string       `json:"orderNo"`
	UserID            int64        `json:"userId"`
	SecurityID        int64        `json:"securityId"`
	Side              string       `json:"side"`
	OrderType         string       `json:"orderType"`
	Quantity          json.Number  `json:"quantity"`
	Price             *json.Number `json:"price"`
	StopPrice         *json.Number `json:"stopPrice"`
	Status            string       `json:"status"`
	FilledQuantity    json.Number  `json:"filledQuantity"`
	AveragePrice      *json.Number `json:"averagePrice"`
	Commission        *json.Number `json:"commission"`
	TimeInForce       string       `json:"timeInForce"`
	ValidUntil        *time.Time   `json:"validUntil"`
	Notes             *string      `json:"notes"`
	OrderDate         time.Time    `json:"orderDate"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	RemainingQuantity json.Number  `json:"remainingQuantity"`
	FillRate          json.Number  `json:"fillRate"`
}

func newOrder(r queries.OrderResponse) Order {
	return Order{
		OrderID:           r.ID,
		OrderNo:           r.OrderNo,
		UserID:            r.UserID,
		SecurityID:        r.SecurityID,
		Side:              r.Side,
		OrderType:         r.OrderType,
		Quantity:          number(r.Quantity),
		Price:             optionalNumber(r.Price),
		StopPrice:         optionalNumber(r.StopPrice),
		Status:            r.Status,
		FilledQuantity:    number(r.FilledQuantity),
		AveragePrice:      optionalNumber(r.AveragePrice),
		Commission:        optionalNumber(r.Commission),
		TimeInForce:       r.TimeInForce,
		ValidUntil:        r.ValidUntil,
		Notes:             r.Notes,
		OrderDate:         r.PlacedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		RemainingQuantity: number(r.RemainingQuantity),
		FillRate:          number(r.FillRate),
	}
}

func newOrders(rs []queries.OrderResponse) []Order {
	orders := make([]Order, 0, len(rs))
	for _, r := range rs {
		orders = append(orders, newOrder(r))
	}
	return orders
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optionalNumber(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := number(*d)
	return &n
}
