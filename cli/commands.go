package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/lukehollenback/bitsane/constants"
	"github.com/lukehollenback/bitsane/exchange"
	"github.com/lukehollenback/bitsane/exchange/bitsane"
	"github.com/shopspring/decimal"
)

//
// runner performs a command's call once its flags have been parsed. set holds the names of the flags
// that were explicitly supplied.
//
type runner func(ctx context.Context, c exchange.Client, set map[string]bool) (exchange.Response, error)

type command struct {
	usage   string
	private bool
	setup   func(fs *flag.FlagSet) runner
}

var commands = map[string]command{
	//
	// Public market data.
	//
	"ticker": {
		usage: "ticker data for all pairs or a comma-separated -pairs list",
		setup: func(fs *flag.FlagSet) runner {
			pairs := fs.String("pairs", "", "comma-separated pairs, e.g. BTC_EUR,ETH_EUR")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				return c.Ticker(ctx, splitList(*pairs)...)
			}
		},
	},
	"orderbook": {
		usage: "order book of a pair",
		setup: func(fs *flag.FlagSet) runner {
			pair := fs.String("pair", "", "pair, e.g. BTC_EUR (required)")
			limitBids := fs.Int("limit-bids", bitsane.DefaultOrderBookLimit, "number of bids")
			limitAsks := fs.Int("limit-asks", bitsane.DefaultOrderBookLimit, "number of asks")

			return func(ctx context.Context, c exchange.Client, set map[string]bool) (exchange.Response, error) {
				if err := required("pair", *pair); err != nil {
					return nil, err
				}

				return c.OrderBook(ctx, *pair, supplied(set, "limit-bids", limitBids), supplied(set, "limit-asks", limitAsks))
			}
		},
	},
	"trades": {
		usage: "recent trades of a pair",
		setup: func(fs *flag.FlagSet) runner {
			pair := fs.String("pair", "", "pair, e.g. BTC_EUR (required)")
			since := fs.Int64("since", bitsane.DefaultTradesSince, "trades since")
			limit := fs.Int("limit", bitsane.DefaultTradesLimit, "number of trades")

			return func(ctx context.Context, c exchange.Client, set map[string]bool) (exchange.Response, error) {
				if err := required("pair", *pair); err != nil {
					return nil, err
				}

				return c.Trades(ctx, *pair, supplied(set, "since", since), supplied(set, "limit", limit))
			}
		},
	},
	"currencies": {
		usage: "list currencies",
		setup: func(fs *flag.FlagSet) runner {
			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				return c.Currencies(ctx)
			}
		},
	},
	"pairs": {
		usage: "list pairs",
		setup: func(fs *flag.FlagSet) runner {
			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				return c.Pairs(ctx)
			}
		},
	},

	//
	// Private account endpoints.
	//
	"balances": {
		usage:   "wallet balances",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				return c.Balances(ctx)
			}
		},
	},
	"deposit-address": {
		usage:   "deposit address of a currency",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			currency := fs.String("currency", "", "currency, e.g. BTC (required)")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("currency", *currency); err != nil {
					return nil, err
				}

				return c.DepositAddress(ctx, *currency)
			}
		},
	},
	"transactions": {
		usage:   "deposit and withdrawal history of a currency",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			currency := fs.String("currency", "", "currency, e.g. BTC (required)")
			rng := historyFlags(fs)

			return func(ctx context.Context, c exchange.Client, set map[string]bool) (exchange.Response, error) {
				if err := required("currency", *currency); err != nil {
					return nil, err
				}

				return c.TransactionsHistory(ctx, *currency, rng(set))
			}
		},
	},
	"vouchers": {
		usage:   "list vouchers",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				return c.Vouchers(ctx)
			}
		},
	},
	"voucher-create": {
		usage:   "create a voucher",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			currency := fs.String("currency", "", "currency (required)")
			amount := fs.String("amount", "", "amount (required)")
			pin := fs.String("pin", "", "pin protecting the voucher (required)")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("currency", *currency); err != nil {
					return nil, err
				}

				if err := required("pin", *pin); err != nil {
					return nil, err
				}

				amt, err := parsePositive("amount", *amount)
				if err != nil {
					return nil, err
				}

				return c.CreateVoucher(ctx, *currency, amt, *pin)
			}
		},
	},
	"voucher-redeem": {
		usage:   "redeem a voucher",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			voucher := fs.String("voucher", "", "voucher code (required)")
			pin := fs.String("pin", "", "voucher pin (required)")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("voucher", *voucher); err != nil {
					return nil, err
				}

				if err := required("pin", *pin); err != nil {
					return nil, err
				}

				return c.RedeemVoucher(ctx, *voucher, *pin)
			}
		},
	},
	"withdraw": {
		usage:   "withdraw funds to an address",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			currency := fs.String("currency", "", "currency (required)")
			amount := fs.String("amount", "", "amount (required)")
			address := fs.String("address", "", "destination address (required)")
			additional := fs.String("additional", "", "memo, payment id or destination tag")

			return func(ctx context.Context, c exchange.Client, set map[string]bool) (exchange.Response, error) {
				if err := required("currency", *currency); err != nil {
					return nil, err
				}

				if err := required("address", *address); err != nil {
					return nil, err
				}

				amt, err := parsePositive("amount", *amount)
				if err != nil {
					return nil, err
				}

				return c.Withdraw(ctx, *currency, amt, *address, supplied(set, "additional", additional))
			}
		},
	},
	"withdrawal-status": {
		usage:   "status of a withdrawal",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			id := fs.String("id", "", "withdrawal id (required)")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("id", *id); err != nil {
					return nil, err
				}

				return c.WithdrawalStatus(ctx, *id)
			}
		},
	},

	//
	// Private trading endpoints.
	//
	"orders": {
		usage:   "open orders",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				return c.Orders(ctx)
			}
		},
	},
	"orders-history": {
		usage:   "past orders of a pair",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			pair := fs.String("pair", "", "pair (required)")
			reverse := fs.Bool("reverse", false, "newest first")
			rng := historyFlags(fs)

			return func(ctx context.Context, c exchange.Client, set map[string]bool) (exchange.Response, error) {
				if err := required("pair", *pair); err != nil {
					return nil, err
				}

				return c.OrdersHistory(ctx, *pair, rng(set), supplied(set, "reverse", reverse))
			}
		},
	},
	"order-new": {
		usage:   "place an order",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			pair := fs.String("pair", "", "pair (required)")
			amount := fs.String("amount", "", "amount (required)")
			price := fs.String("price", "0", "price")
			side := fs.String("side", "", "buy or sell (required)")
			orderType := fs.String("type", exchange.Limit.String(), "limit or market")
			hidden := fs.Bool("hidden", false, "hide the order from the book")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("pair", *pair); err != nil {
					return nil, err
				}

				amt, err := parsePositive("amount", *amount)
				if err != nil {
					return nil, err
				}

				px, err := decimal.NewFromString(*price)
				if err != nil || px.LessThan(constants.Zero()) {
					return nil, usagef("-price must be a non-negative number, got %q", *price)
				}

				s, ok := exchange.ParseOrderSide(*side)
				if !ok {
					return nil, usagef("-side must be %q or %q, got %q", exchange.Buy, exchange.Sell, *side)
				}

				t, ok := exchange.ParseOrderType(*orderType)
				if !ok {
					return nil, usagef("-type must be %q or %q, got %q", exchange.Limit, exchange.Market, *orderType)
				}

				return c.OrderNew(ctx, exchange.NewOrder{
					Pair:   *pair,
					Amount: amt,
					Price:  px,
					Side:   s,
					Type:   t,
					Hidden: *hidden,
				})
			}
		},
	},
	"order-status": {
		usage:   "status of an order",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			id := fs.String("id", "", "order id (required)")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("id", *id); err != nil {
					return nil, err
				}

				return c.OrderStatus(ctx, *id)
			}
		},
	},
	"order-cancel": {
		usage:   "cancel an order",
		private: true,
		setup: func(fs *flag.FlagSet) runner {
			id := fs.String("id", "", "order id (required)")

			return func(ctx context.Context, c exchange.Client, _ map[string]bool) (exchange.Response, error) {
				if err := required("id", *id); err != nil {
					return nil, err
				}

				return c.OrderCancel(ctx, *id)
			}
		},
	},
}

//
// historyFlags registers -since, -until and -limit and returns a function that builds the range from
// them. Until and limit are only set when they were supplied.
//
func historyFlags(fs *flag.FlagSet) func(set map[string]bool) exchange.HistoryRange {
	since := fs.Int64("since", 0, "start of the range")
	until := fs.Int64("until", 0, "end of the range")
	limit := fs.Int("limit", 0, "maximum number of entries")

	return func(set map[string]bool) exchange.HistoryRange {
		return exchange.HistoryRange{
			Since: *since,
			Until: supplied(set, "until", until),
			Limit: supplied(set, "limit", limit),
		}
	}
}

// supplied returns value when the named flag was given on the command line and nil otherwise.
func supplied[T any](set map[string]bool, name string, value *T) *T {
	if set[name] {
		return value
	}

	return nil
}

func required(name string, value string) error {
	if strings.TrimSpace(value) == "" {
		return usagef("-%s is required", name)
	}

	return nil
}

func parsePositive(name string, value string) (decimal.Decimal, error) {
	if err := required(name, value); err != nil {
		return decimal.Decimal{}, err
	}

	d, err := decimal.NewFromString(value)
	if err != nil || !d.GreaterThan(constants.Zero()) {
		return decimal.Decimal{}, usagef("-%s must be a positive number, got %q", name, value)
	}

	return d, nil
}

func splitList(value string) []string {
	var out []string

	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
