package exchange

import "github.com/shopspring/decimal"

//
// HistoryRange bounds a history query. Since is always sent; Until and Limit are only sent when
// they are non-nil.
//
type HistoryRange struct {
	Since int64
	Until *int64
	Limit *int
}

//
// NewOrder describes an order to be placed. An empty Type is treated as Limit.
//
type NewOrder struct {
	Pair   string
	Amount decimal.Decimal
	Price  decimal.Decimal
	Side   OrderSide
	Type   OrderType
	Hidden bool
}

// Int64 returns a pointer to v, for optional parameters.
func Int64(v int64) *int64 { return &v }

// Int returns a pointer to v, for optional parameters.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for optional parameters.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for optional parameters.
func String(v string) *string { return &v }
