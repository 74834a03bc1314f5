package order

import (
	"errors"
	"fmt"
	"time"

	"oms/internal/pkg/errs"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

const fillRatePlaces = 4

var hundred = decimal.NewFromInt(100)

// ID is the store-assigned numeric identifier of an order.
type ID int64

func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// Intent is what the owner asked for when placing the order.
type Intent struct {
	UserID      int64
	SecurityID  int64
	Side        Side
	Type        Type
	Quantity    decimal.Decimal
	LimitPrice  optional.Value[decimal.Decimal]
	StopPrice   optional.Value[decimal.Decimal]
	TimeInForce TimeInForce
	ValidUntil  optional.Value[time.Time]
	Notes       optional.Value[string]
}

// Snapshot is the complete persisted state of an order. It is used to restore
// orders from storage and to map them back.
type Snapshot struct {
	Intent

	ID             ID
	Number         Number
	Status         Status
	FilledQuantity decimal.Decimal
	AveragePrice   optional.Value[decimal.Decimal]
	Commission     optional.Value[decimal.Decimal]
	PlacedAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Order is the aggregate root of the order management service. It records a trade
// order placed by a user against a security and tracks its administrative state.
//
// Order follows these invariants:
//   - Quantity is positive and filled quantity stays within [0, quantity]
//   - Filled quantity never decreases
//   - The order number and identifier are assigned once
//   - Status transitions follow the Status transition table
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id     ID
	number Number

	userID     int64
	securityID int64

	side        Side
	orderType   Type
	quantity    decimal.Decimal
	limitPrice  optional.Value[decimal.Decimal]
	stopPrice   optional.Value[decimal.Decimal]
	timeInForce TimeInForce
	validUntil  optional.Value[time.Time]
	notes       optional.Value[string]

	status         Status
	filledQuantity decimal.Decimal
	averagePrice   optional.Value[decimal.Decimal]
	commission     optional.Value[decimal.Decimal]

	placedAt  time.Time
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order in NEW status with zero filled quantity. The placed,
// created and updated timestamps are all set to now. Identifier and order number
// are assigned later by the store and the number generator.
//
// NewOrder checks structural invariants only; admission rules that depend on the
// order type are enforced by the order validator before construction.
func NewOrder(intent Intent, now time.Time) (*Order, error) {
	o := &Order{
		status:         New,
		filledQuantity: decimal.Zero,
		placedAt:       now,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := o.setIntent(intent); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from its persisted state, re-checking invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		id:            s.ID,
		number:        s.Number,
		status:        s.Status,
		averagePrice:  s.AveragePrice,
		commission:    s.Commission,
		placedAt:      s.PlacedAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.Number.Validate(),
		s.Status.Validate(),
		o.setIntent(s.Intent),
	); err != nil {
		return nil, err
	}

	if err := o.setFilledQuantity(s.FilledQuantity); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the store-assigned identifier, zero until persisted.
func (o *Order) ID() ID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() Number {
	return o.number
}

// UserID returns the owner of the order.
func (o *Order) UserID() int64 {
	return o.userID
}

// SecurityID returns the traded security.
func (o *Order) SecurityID() int64 {
	return o.securityID
}

func (o *Order) Side() Side {
	return o.side
}

func (o *Order) Type() Type {
	return o.orderType
}

// Quantity returns the requested quantity.
func (o *Order) Quantity() decimal.Decimal {
	return o.quantity
}

func (o *Order) LimitPrice() optional.Value[decimal.Decimal] {
	return o.limitPrice
}

func (o *Order) StopPrice() optional.Value[decimal.Decimal] {
	return o.stopPrice
}

func (o *Order) TimeInForce() TimeInForce {
	return o.timeInForce
}

// ValidUntil returns the optional expiry timestamp.
func (o *Order) ValidUntil() optional.Value[time.Time] {
	return o.validUntil
}

func (o *Order) Notes() optional.Value[string] {
	return o.notes
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

func (o *Order) FilledQuantity() decimal.Decimal {
	return o.filledQuantity
}

// AveragePrice returns the volume weighted fill price, absent until the first fill.
func (o *Order) AveragePrice() optional.Value[decimal.Decimal] {
	return o.averagePrice
}

func (o *Order) Commission() optional.Value[decimal.Decimal] {
	return o.commission
}

// PlacedAt returns when the order was placed. It never changes.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// RemainingQuantity is the part of the requested quantity not yet filled.
func (o *Order) RemainingQuantity() decimal.Decimal {
	return o.quantity.Sub(o.filledQuantity)
}

// FillRate is filled/quantity as a percentage rounded to 4 decimal places,
// or zero when quantity is zero.
func (o *Order) FillRate() decimal.Decimal {
	if o.quantity.IsZero() {
		return decimal.Zero
	}
	return o.filledQuantity.Mul(hundred).DivRound(o.quantity, fillRatePlaces)
}

// Snapshot returns the complete state of the order for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		Intent: Intent{
			UserID:      o.userID,
			SecurityID:  o.securityID,
			Side:        o.side,
			Type:        o.orderType,
			Quantity:    o.quantity,
			LimitPrice:  o.limitPrice,
			StopPrice:   o.stopPrice,
			TimeInForce: o.timeInForce,
			ValidUntil:  o.validUntil,
			Notes:       o.notes,
		},
		ID:             o.id,
		Number:         o.number,
		Status:         o.status,
		FilledQuantity: o.filledQuantity,
		AveragePrice:   o.averagePrice,
		Commission:     o.commission,
		PlacedAt:       o.placedAt,
		CreatedAt:      o.createdAt,
		UpdatedAt:      o.updatedAt,
	}
}

// AssignID records the identifier chosen by the store. It can be called once.
func (o *Order) AssignID(id ID) error {
	if o.id != 0 {
		return errs.NewIllegalStateError("assign id", o.status.String(), "order already has an id")
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// AssignNumber records the generated order number. It can be called once.
func (o *Order) AssignNumber(number Number) error {
	if o.number != "" {
		return errs.NewIllegalStateError("assign number", o.status.String(), "order number is immutable")
	}
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

// IsExpiredAt reports whether an active order's validity ended before now.
func (o *Order) IsExpiredAt(now time.Time) bool {
	until, ok := o.validUntil.Get()
	return ok && o.status.IsActive() && until.Before(now)
}

// ApplyChanges overwrites the fields present in ch. Orders in FILLED or CANCELED
// status cannot be edited. The resulting quantity must stay positive and not fall
// below the filled quantity; supplied prices must be positive. Amounts must fit
// ValidateAmount.
func (o *Order) ApplyChanges(ch Changes, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateEditable(); err != nil {
		return err
	}

	quantity := ch.Quantity.OrElse(o.quantity)
	if err := errors.Join(
		validateQuantity(quantity),
		ValidateAmount("quantity", quantity),
		validateQuantityCoversFilled(quantity, o.filledQuantity),
		validateOptionalPrice("price", ch.LimitPrice),
		validateOptionalAmount("price", ch.LimitPrice),
		validateOptionalPrice("stopPrice", ch.StopPrice),
		validateOptionalAmount("stopPrice", ch.StopPrice),
		validateOptionalTimeInForce(ch.TimeInForce),
	); err != nil {
		return err
	}

	o.quantity = quantity
	if ch.LimitPrice.IsPresent() {
		o.limitPrice = ch.LimitPrice
	}
	if ch.StopPrice.IsPresent() {
		o.stopPrice = ch.StopPrice
	}
	o.timeInForce = ch.TimeInForce.OrElse(o.timeInForce)
	if ch.ValidUntil.IsPresent() {
		o.validUntil = ch.ValidUntil
	}
	if ch.Notes.IsPresent() {
		o.notes = ch.Notes
	}
	o.updatedAt = now
	return nil
}

// Cancel withdraws the order.
func (o *Order) Cancel(now time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// Reject refuses a NEW order. Nothing in this service rejects orders after
// admission; it is the hook for an admission or risk collaborator.
func (o *Order) Reject(now time.Time) error {
	next, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// Expire ends an active order whose time in force ran out.
func (o *Order) Expire(now time.Time) error {
	next, err := o.status.Expire()
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// Fill records an execution of quantity at price. The order moves to PARTIAL, or to
// FILLED once the whole quantity is filled; the average fill price is volume weighted.
// This service does not match orders, so Fill has no caller here. It is the entry
// point for an execution feed and keeps filled quantity monotonic and bounded.
func (o *Order) Fill(quantity decimal.Decimal, price decimal.Decimal, now time.Time) error {
	if err := errors.Join(
		validatePositive("fillQuantity", quantity),
		ValidateAmount("fillQuantity", quantity),
		validatePositive("fillPrice", price),
		ValidateAmount("fillPrice", price),
	); err != nil {
		return err
	}

	filled := o.filledQuantity.Add(quantity)
	if filled.GreaterThan(o.quantity) {
		return errs.NewValueIsOutOfRangeError("fillQuantity", quantity, decimal.Zero, o.RemainingQuantity())
	}

	next, err := o.status.Fill(filled.Equal(o.quantity))
	if err != nil {
		return err
	}

	notional := price.Mul(quantity)
	if avg, ok := o.averagePrice.Get(); ok {
		notional = notional.Add(avg.Mul(o.filledQuantity))
	}

	o.averagePrice = optional.Of(notional.DivRound(filled, AmountPlaces))
	o.filledQuantity = filled
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) setIntent(intent Intent) error {
	if err := errors.Join(
		validatePositiveID("userId", intent.UserID),
		validatePositiveID("securityId", intent.SecurityID),
		intent.Side.Validate(),
		intent.Type.Validate(),
		validateQuantity(intent.Quantity),
		ValidateAmount("quantity", intent.Quantity),
		validateOptionalPrice("price", intent.LimitPrice),
		validateOptionalAmount("price", intent.LimitPrice),
		validateOptionalPrice("stopPrice", intent.StopPrice),
		validateOptionalAmount("stopPrice", intent.StopPrice),
		intent.TimeInForce.Validate(),
	); err != nil {
		return err
	}

	o.userID = intent.UserID
	o.securityID = intent.SecurityID
	o.side = intent.Side
	o.orderType = intent.Type
	o.quantity = intent.Quantity
	o.limitPrice = intent.LimitPrice
	o.stopPrice = intent.StopPrice
	o.timeInForce = intent.TimeInForce
	o.validUntil = intent.ValidUntil
	o.notes = intent.Notes
	return nil
}

func (o *Order) setFilledQuantity(filled decimal.Decimal) error {
	if filled.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("filledQuantity", fmt.Errorf("%s is negative", filled))
	}
	if err := validateQuantityCoversFilled(o.quantity, filled); err != nil {
		return err
	}
	o.filledQuantity = filled
	return nil
}

func validatePositiveID(param string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

func validatePositive(param string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is not greater than 0", v))
	}
	return nil
}

func validateQuantity(quantity decimal.Decimal) error {
	return validatePositive("quantity", quantity)
}

func validateQuantityCoversFilled(quantity decimal.Decimal, filled decimal.Decimal) error {
	if quantity.LessThan(filled) {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is less than filled quantity %s", quantity, filled))
	}
	return nil
}

func validateOptionalPrice(param string, price optional.Value[decimal.Decimal]) error {
	if p, ok := price.Get(); ok {
		return validatePositive(param, p)
	}
	return nil
}

func validateOptionalTimeInForce(tif optional.Value[TimeInForce]) error {
	if v, ok := tif.Get(); ok {
		return v.Validate()
	}
	return nil
}
