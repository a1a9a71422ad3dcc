package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

//
// Client generically provides an interface to an object that can be used to interact with a
// cryptocurrency exchange's regular REST API. Normally, this is the client used to do things
// like place orders, check balances, and retrieve market data.
//
// Every method performs exactly one blocking HTTP round trip. Whenever an endpoint fails the
// returned response is nil and the error is one of *TransportError (the request never completed),
// *HTTPError (non-200 status), an APIError (the exchange rejected the call inside a successful
// response) or *DecodeError (the body could not be parsed).
//
type Client interface {
	MarketData
	Account
	Trading
}

//
// MarketData covers the unauthenticated endpoints. None of these calls attach credentials. Nil
// limits and starting points fall back to the exchange defaults; an explicit zero is sent as zero.
//
type MarketData interface {
	Ticker(ctx context.Context, pairs ...string) (Response, error)
	OrderBook(ctx context.Context, pair string, limitBids *int, limitAsks *int) (Response, error)
	Trades(ctx context.Context, pair string, since *int64, limit *int) (Response, error)
	Currencies(ctx context.Context) (Response, error)
	Pairs(ctx context.Context) (Response, error)
}

//
// Account covers the signed endpoints dealing with funds: balances, deposits, withdrawals and
// vouchers.
//
type Account interface {
	Balances(ctx context.Context) (Response, error)
	DepositAddress(ctx context.Context, currency string) (Response, error)
	TransactionsHistory(ctx context.Context, currency string, rng HistoryRange) (Response, error)
	Vouchers(ctx context.Context) (Response, error)
	CreateVoucher(ctx context.Context, currency string, amount decimal.Decimal, pin string) (Response, error)
	RedeemVoucher(ctx context.Context, voucher string, pin string) (Response, error)
	Withdraw(ctx context.Context, currency string, amount decimal.Decimal, address string, additional *string) (Response, error)
	WithdrawalStatus(ctx context.Context, withdrawalID string) (Response, error)
}

//
// Trading covers the signed endpoints dealing with orders.
//
type Trading interface {
	Orders(ctx context.Context) (Response, error)
	OrdersHistory(ctx context.Context, pair string, rng HistoryRange, reverse *bool) (Response, error)
	OrderNew(ctx context.Context, order NewOrder) (Response, error)
	OrderStatus(ctx context.Context, orderID string) (Response, error)
	OrderCancel(ctx context.Context, orderID string) (Response, error)
}
