package bitsane

import (
	"context"
	"strings"

	"github.com/lukehollenback/bitsane/exchange"
)

//
// Ticker retrieves ticker data. With no pairs every market is returned; otherwise the pairs are
// sent as a comma-separated list.
//
func (o *Client) Ticker(ctx context.Context, pairs ...string) (exchange.Response, error) {
	return wrap(o.public(ctx, TickerEndpoint, &tickerParams{Pairs: strings.Join(pairs, ",")}))
}

//
// OrderBook retrieves the order book of a pair. A nil limit falls back to DefaultOrderBookLimit.
//
func (o *Client) OrderBook(ctx context.Context, pair string, limitBids *int, limitAsks *int) (exchange.Response, error) {
	params := &orderBookParams{
		Pair:      pair,
		LimitBids: orDefault(limitBids, DefaultOrderBookLimit),
		LimitAsks: orDefault(limitAsks, DefaultOrderBookLimit),
	}

	return wrap(o.public(ctx, OrderBookEndpoint, params))
}

//
// Trades retrieves recent trades of a pair. Nil values fall back to DefaultTradesSince and
// DefaultTradesLimit.
//
func (o *Client) Trades(ctx context.Context, pair string, since *int64, limit *int) (exchange.Response, error) {
	params := &tradesParams{
		Pair:  pair,
		Since: orDefault(since, DefaultTradesSince),
		Limit: orDefault(limit, DefaultTradesLimit),
	}

	return wrap(o.public(ctx, TradesEndpoint, params))
}

// Currencies lists every currency known to the exchange.
func (o *Client) Currencies(ctx context.Context) (exchange.Response, error) {
	return wrap(o.public(ctx, CurrenciesEndpoint, nil))
}

// Pairs lists every tradable pair.
func (o *Client) Pairs(ctx context.Context) (exchange.Response, error) {
	return wrap(o.public(ctx, PairsEndpoint, nil))
}

func orDefault[T int | int64](v *T, def T) T {
	if v == nil {
		return def
	}

	return *v
}

//
// wrap converts a concrete response into the exchange.Response interface without letting a nil
// *Response turn into a non-nil interface value.
//
func wrap(resp *Response, err error) (exchange.Response, error) {
	if err != nil {
		return nil, err
	}

	return resp, nil
}
