package bitsane

const (
	BaseURL     = "https://bitsane.com/api"
	PublicPath  = "/public/"
	PrivatePath = "/private/"

	APIKeyHeader    = "X-BS-APIKEY"
	PayloadHeader   = "X-BS-PAYLOAD"
	SignatureHeader = "X-BS-SIGNATURE"

	NonceField = "nonce"
)

// Public endpoints.
const (
	TickerEndpoint     = "ticker"
	OrderBookEndpoint  = "orderbook"
	TradesEndpoint     = "trades"
	CurrenciesEndpoint = "assets/currencies"
	PairsEndpoint      = "assets/pairs"
)

// Private endpoints.
const (
	BalancesEndpoint            = "balances"
	DepositAddressEndpoint      = "deposit/address"
	TransactionsHistoryEndpoint = "transactions/history"
	VouchersEndpoint            = "vouchers"
	CreateVoucherEndpoint       = "vouchers/create"
	RedeemVoucherEndpoint       = "vouchers/redeem"
	WithdrawEndpoint            = "withdraw"
	WithdrawalStatusEndpoint    = "withdrawal/status"
	OrdersEndpoint              = "orders"
	OrdersHistoryEndpoint       = "orders/history"
	OrderNewEndpoint            = "order/new"
	OrderStatusEndpoint         = "order/status"
	OrderCancelEndpoint         = "order/cancel"
)

// Defaults applied when a caller omits (passes nil for) the corresponding public parameter.
const (
	DefaultOrderBookLimit = 50
	DefaultTradesSince    = 50
	DefaultTradesLimit    = 50
)
