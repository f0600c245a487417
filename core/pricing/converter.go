// Package pricing normalises prices to USD for comparison.
// The rate is a fixed policy, not a market quote.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"subscription-audit/core/types"
)

// DefaultGBPToUSD is the fixed rate used when none is configured
var DefaultGBPToUSD = decimal.RequireFromString("1.2")

// Converter converts catalog currencies to USD-equivalent amounts
type Converter struct {
	gbpToUSD decimal.Decimal
}

// NewConverter creates a converter with the default rate
func NewConverter() *Converter {
	return &Converter{gbpToUSD: DefaultGBPToUSD}
}

// NewConverterWithRate creates a converter with an explicit GBP→USD rate
func NewConverterWithRate(gbpToUSD decimal.Decimal) (*Converter, error) {
	if !gbpToUSD.IsPositive() {
		return nil, fmt.Errorf("GBP to USD rate must be positive, got %s", gbpToUSD)
	}
	return &Converter{gbpToUSD: gbpToUSD}, nil
}

// GBPToUSD returns the configured rate
func (c *Converter) GBPToUSD() decimal.Decimal {
	return c.gbpToUSD
}

// ToUSD returns the USD-equivalent of amount. Only currencies accepted by
// catalog validation reach here; anything else is a programming error.
func (c *Converter) ToUSD(amount decimal.Decimal, currency types.Currency) decimal.Decimal {
	switch currency {
	case types.CurrencyUSD:
		return amount
	case types.CurrencyGBP:
		return amount.Mul(c.gbpToUSD)
	default:
		panic(fmt.Sprintf("pricing: no USD rate for currency %q", currency))
	}
}
