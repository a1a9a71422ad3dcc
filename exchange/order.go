package exchange

//
// OrderSide represents which side of the book an order is placed on. Exchanges expect the plain
// lowercase string on the wire.
//
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

func (o OrderSide) String() string {
	return string(o)
}

//
// OrderType represents how an order should be matched. The zero value is treated as Limit by
// clients that need a default.
//
type OrderType string

const (
	Limit  OrderType = "limit"
	Market OrderType = "market"
)

func (o OrderType) String() string {
	return string(o)
}

//
// ParseOrderSide converts user input into an OrderSide, reporting whether it was recognized.
//
func ParseOrderSide(s string) (OrderSide, bool) {
	switch OrderSide(s) {
	case Buy, Sell:
		return OrderSide(s), true
	}

	return "", false
}

//
// ParseOrderType converts user input into an OrderType, reporting whether it was recognized.
//
func ParseOrderType(s string) (OrderType, bool) {
	switch OrderType(s) {
	case Limit, Market:
		return OrderType(s), true
	}

	return "", false
}
