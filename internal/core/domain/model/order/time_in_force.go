package order

// TimeInForce governs how long an order remains eligible for execution.
type TimeInForce int

const (
	TimeInForceUnknown TimeInForce = iota
	Day
	GoodTillCanceled
	ImmediateOrCancel
	FillOrKill
)

func timeInForceNames() map[TimeInForce]string {
	return map[TimeInForce]string{
		Day:               "DAY",
		GoodTillCanceled:  "GTC",
		ImmediateOrCancel: "IOC",
		FillOrKill:        "FOK",
	}
}

// ParseTimeInForce converts DAY, GTC, IOC or FOK (case-insensitive) to a TimeInForce.
func ParseTimeInForce(s string) (TimeInForce, error) {
	return parseEnum(s, timeInForceNames(), "timeInForce")
}

func (t TimeInForce) Validate() error {
	return validateEnum(t, timeInForceNames(), "timeInForce")
}

func (t TimeInForce) String() string {
	if name, ok := timeInForceNames()[t]; ok {
		return name
	}
	return "UNKNOWN"
}
