package order

// Type is the pricing mechanism of an order.
type Type int

const (
	TypeUnknown Type = iota
	Market
	Limit
	Stop
	StopLimit
)

func typeNames() map[Type]string {
	return map[Type]string{
		Market:    "MARKET",
		Limit:     "LIMIT",
		Stop:      "STOP",
		StopLimit: "STOP_LIMIT",
	}
}

// ParseType converts MARKET, LIMIT, STOP or STOP_LIMIT (case-insensitive) to a Type.
func ParseType(s string) (Type, error) {
	return parseEnum(s, typeNames(), "orderType")
}

func (t Type) Validate() error {
	return validateEnum(t, typeNames(), "orderType")
}

func (t Type) String() string {
	if name, ok := typeNames()[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// RequiresLimitPrice reports whether orders of this type must carry a limit price.
func (t Type) RequiresLimitPrice() bool {
	return t == Limit || t == StopLimit
}

// RequiresStopPrice reports whether orders of this type must carry a stop price.
func (t Type) RequiresStopPrice() bool {
	return t == Stop || t == StopLimit
}
