package constants

import (
	"github.com/shopspring/decimal"
)

const (
	AppName = "bitsane"

	//
	// EnvPrefix is prepended to every configuration variable (e.g. BITSANE_API_KEY).
	//
	EnvPrefix = "BITSANE"
)

var (
	zero = decimal.Zero
)

func Zero() decimal.Decimal {
	return zero
}
