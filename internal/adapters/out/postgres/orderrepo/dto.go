// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"errors"
	"time"

	"oms/internal/core/domain/model/order"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Enumerations are stored by name; monetary and quantity columns are numeric(18,4).
type OrderDTO struct {
	ID             int64               `gorm:"column:order_id;primaryKey;autoIncrement"`
	OrderNo        string              `gorm:"column:order_no;type:varchar(50);not null;uniqueIndex"`
	UserID         int64               `gorm:"column:user_id;not null;index"`
	SecurityID     int64               `gorm:"column:security_id;not null;index"`
	Side           string              `gorm:"column:side;type:varchar(10);not null"`
	OrderType      string              `gorm:"column:order_type;type:varchar(20);not null"`
	Quantity       decimal.Decimal     `gorm:"column:quantity;type:numeric(18,4);not null"`
	Price          decimal.NullDecimal `gorm:"column:price;type:numeric(18,4)"`
	StopPrice      decimal.NullDecimal `gorm:"column:stop_price;type:numeric(18,4)"`
	TimeInForce    string              `gorm:"column:time_in_force;type:varchar(10);not null"`
	Status         string              `gorm:"column:status;type:varchar(20);not null;index"`
	FilledQuantity decimal.Decimal     `gorm:"column:filled_quantity;type:numeric(18,4);not null"`
	AveragePrice   decimal.NullDecimal `gorm:"column:average_price;type:numeric(18,4)"`
	Commission     decimal.NullDecimal `gorm:"column:commission;type:numeric(18,4)"`
	OrderDate      time.Time           `gorm:"column:order_date;not null;index"`
	ValidUntil     *time.Time          `gorm:"column:valid_until"`
	Notes          *string             `gorm:"column:notes;type:text"`
	CreatedAt      time.Time           `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	return OrderDTO{
		ID:             int64(s.ID),
		OrderNo:        s.Number.String(),
		UserID:         s.UserID,
		SecurityID:     s.SecurityID,
		Side:           s.Side.String(),
		OrderType:      s.Type.String(),
		Quantity:       s.Quantity,
		Price:          nullDecimal(s.LimitPrice),
		StopPrice:      nullDecimal(s.StopPrice),
		TimeInForce:    s.TimeInForce.String(),
		Status:         s.Status.String(),
		FilledQuantity: s.FilledQuantity,
		AveragePrice:   nullDecimal(s.AveragePrice),
		Commission:     nullDecimal(s.Commission),
		OrderDate:      s.PlacedAt,
		ValidUntil:     s.ValidUntil.Ptr(),
		Notes:          s.Notes.Ptr(),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	side, sideErr := order.ParseSide(dto.Side)
	orderType, typeErr := order.ParseType(dto.OrderType)
	tif, tifErr := order.ParseTimeInForce(dto.TimeInForce)
	status, statusErr := order.ParseStatus(dto.Status)
	if err := errors.Join(sideErr, typeErr, tifErr, statusErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		Intent: order.Intent{
			UserID:      dto.UserID,
			SecurityID:  dto.SecurityID,
			Side:        side,
			Type:        orderType,
			Quantity:    dto.Quantity,
			LimitPrice:  optionalDecimal(dto.Price),
			StopPrice:   optionalDecimal(dto.StopPrice),
			TimeInForce: tif,
			ValidUntil:  optional.FromPtr(dto.ValidUntil),
			Notes:       optional.FromPtr(dto.Notes),
		},
		ID:             order.ID(dto.ID),
		Number:         order.Number(dto.OrderNo),
		Status:         status,
		FilledQuantity: dto.FilledQuantity,
		AveragePrice:   optionalDecimal(dto.AveragePrice),
		Commission:     optionalDecimal(dto.Commission),
		PlacedAt:       dto.OrderDate,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}

func nullDecimal(v optional.Value[decimal.Decimal]) decimal.NullDecimal {
	d, ok := v.Get()
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

func optionalDecimal(v decimal.NullDecimal) optional.Value[decimal.Decimal] {
	if !v.Valid {
		return optional.None[decimal.Decimal]()
	}
	return optional.Of(v.Decimal)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
