// Package types - Subscription audit domain types
package types

import (
	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Valid reports whether the currency is one the catalog may use
func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyGBP
}

// FormatUSD renders an amount as "$ X.XX"
func FormatUSD(amount decimal.Decimal) string {
	return "$ " + amount.StringFixed(2)
}

// FormatAmount renders an amount as "<currency> X.XX"
func FormatAmount(c Currency, amount decimal.Decimal) string {
	return c.String() + " " + amount.StringFixed(2)
}
