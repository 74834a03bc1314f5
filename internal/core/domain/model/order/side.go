package order

// Side is the direction of an order.
type Side int

const (
	SideUnknown Side = iota
	Buy
	Sell
)

func sideNames() map[Side]string {
	return map[Side]string{
		Buy:  "BUY",
		Sell: "SELL",
	}
}

// ParseSide converts "BUY" or "SELL" (case-insensitive) to a Side.
func ParseSide(s string) (Side, error) {
	return parseEnum(s, sideNames(), "side")
}

func (s Side) Validate() error {
	return validateEnum(s, sideNames(), "side")
}

func (s Side) String() string {
	if name, ok := sideNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}
