package bitsane

import "github.com/shopspring/decimal"

//
// Query parameters for the public endpoints (encoded with go-querystring).
//

type tickerParams struct {
	Pairs string `url:"pairs,omitempty"`
}

type orderBookParams struct {
	Pair      string `url:"pair"`
	LimitBids int    `url:"limit_bids"`
	LimitAsks int    `url:"limit_asks"`
}

type tradesParams struct {
	Pair  string `url:"pair"`
	Since int64  `url:"since"`
	Limit int    `url:"limit"`
}

//
// Body parameters for the private endpoints. Pointer fields tagged omitempty are optional and are
// left out of the payload entirely when nil.
//

type currencyParams struct {
	Currency string `json:"currency"`
}

type transactionsHistoryParams struct {
	Currency string `json:"currency"`
	Since    int64  `json:"since"`
	Until    *int64 `json:"until,omitempty"`
	Limit    *int   `json:"limit,omitempty"`
}

type createVoucherParams struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Pin      string          `json:"pin"`
}

type redeemVoucherParams struct {
	Voucher string `json:"voucher"`
	Pin     string `json:"pin"`
}

type withdrawParams struct {
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
	Address    string          `json:"address"`
	Additional *string         `json:"additional,omitempty"`
}

type withdrawalStatusParams struct {
	WithdrawalID string `json:"withdrawal_id"`
}

type ordersHistoryParams struct {
	Pair    string `json:"pair"`
	Since   int64  `json:"since"`
	Until   *int64 `json:"until,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
	Reverse *bool  `json:"reverse,omitempty"`
}

type orderNewParams struct {
	Pair   string          `json:"pair"`
	Amount decimal.Decimal `json:"amount"`
	Price  decimal.Decimal `json:"price"`
	Side   string          `json:"side"`
	Type   string          `json:"type"`
	Hidden bool            `json:"hidden"`
}

type orderIDParams struct {
	OrderID string `json:"order_id"`
}
