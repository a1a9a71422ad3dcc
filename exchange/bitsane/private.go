package bitsane

import (
	"context"

	"github.com/lukehollenback/bitsane/exchange"
	"github.com/shopspring/decimal"
)

// Balances retrieves the balance of every wallet on the account.
func (o *Client) Balances(ctx context.Context) (exchange.Response, error) {
	return wrap(o.private(ctx, BalancesEndpoint, nil))
}

// DepositAddress retrieves the deposit address of a currency.
func (o *Client) DepositAddress(ctx context.Context, currency string) (exchange.Response, error) {
	return wrap(o.private(ctx, DepositAddressEndpoint, &currencyParams{Currency: currency}))
}

//
// TransactionsHistory retrieves deposits and withdrawals of a currency. Until and Limit are only
// sent when set.
//
func (o *Client) TransactionsHistory(ctx context.Context, currency string, rng exchange.HistoryRange) (exchange.Response, error) {
	params := &transactionsHistoryParams{
		Currency: currency,
		Since:    rng.Since,
		Until:    rng.Until,
		Limit:    rng.Limit,
	}

	return wrap(o.private(ctx, TransactionsHistoryEndpoint, params))
}

// Vouchers lists the vouchers created by the account.
func (o *Client) Vouchers(ctx context.Context) (exchange.Response, error) {
	return wrap(o.private(ctx, VouchersEndpoint, nil))
}

// CreateVoucher creates a voucher for the given amount, protected by pin.
func (o *Client) CreateVoucher(ctx context.Context, currency string, amount decimal.Decimal, pin string) (exchange.Response, error) {
	params := &createVoucherParams{
		Currency: currency,
		Amount:   amount,
		Pin:      pin,
	}

	return wrap(o.private(ctx, CreateVoucherEndpoint, params))
}

// RedeemVoucher credits a voucher to the account.
func (o *Client) RedeemVoucher(ctx context.Context, voucher string, pin string) (exchange.Response, error) {
	return wrap(o.private(ctx, RedeemVoucherEndpoint, &redeemVoucherParams{Voucher: voucher, Pin: pin}))
}

//
// Withdraw requests a withdrawal to address. Additional (a memo, payment id or destination tag) is
// only sent when non-nil.
//
func (o *Client) Withdraw(
	ctx context.Context,
	currency string,
	amount decimal.Decimal,
	address string,
	additional *string,
) (exchange.Response, error) {
	params := &withdrawParams{
		Currency:   currency,
		Amount:     amount,
		Address:    address,
		Additional: additional,
	}

	return wrap(o.private(ctx, WithdrawEndpoint, params))
}

// WithdrawalStatus retrieves the state of a previously requested withdrawal.
func (o *Client) WithdrawalStatus(ctx context.Context, withdrawalID string) (exchange.Response, error) {
	return wrap(o.private(ctx, WithdrawalStatusEndpoint, &withdrawalStatusParams{WithdrawalID: withdrawalID}))
}

// Orders lists the account's open orders.
func (o *Client) Orders(ctx context.Context) (exchange.Response, error) {
	return wrap(o.private(ctx, OrdersEndpoint, nil))
}

//
// OrdersHistory retrieves past orders of a pair. Until, Limit and reverse are only sent when set.
//
func (o *Client) OrdersHistory(ctx context.Context, pair string, rng exchange.HistoryRange, reverse *bool) (exchange.Response, error) {
	params := &ordersHistoryParams{
		Pair:    pair,
		Since:   rng.Since,
		Until:   rng.Until,
		Limit:   rng.Limit,
		Reverse: reverse,
	}

	return wrap(o.private(ctx, OrdersHistoryEndpoint, params))
}

//
// OrderNew places an order. An empty order type is sent as "limit".
//
func (o *Client) OrderNew(ctx context.Context, order exchange.NewOrder) (exchange.Response, error) {
	orderType := order.Type
	if orderType == "" {
		orderType = exchange.Limit
	}

	params := &orderNewParams{
		Pair:   order.Pair,
		Amount: order.Amount,
		Price:  order.Price,
		Side:   order.Side.String(),
		Type:   orderType.String(),
		Hidden: order.Hidden,
	}

	return wrap(o.private(ctx, OrderNewEndpoint, params))
}

// OrderStatus retrieves the state of an order.
func (o *Client) OrderStatus(ctx context.Context, orderID string) (exchange.Response, error) {
	return wrap(o.private(ctx, OrderStatusEndpoint, &orderIDParams{OrderID: orderID}))
}

// OrderCancel cancels an open order.
func (o *Client) OrderCancel(ctx context.Context, orderID string) (exchange.Response, error) {
	return wrap(o.private(ctx, OrderCancelEndpoint, &orderIDParams{OrderID: orderID}))
}

var _ exchange.Client = (*Client)(nil)
