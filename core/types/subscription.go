package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is one parsed Name=cost pair
type Subscription struct {
	Name        string          `json:"name"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// Alternative is a known cheaper option for a catalog entry
type Alternative struct {
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
	Currency Currency        `json:"currency"`
	Notes    string          `json:"notes,omitempty"`
}

// CatalogEntry is a known tool with its list price and alternatives in preference order
type CatalogEntry struct {
	// Key is the lowercase tool name
	Key          string          `json:"key"`
	BaseCost     decimal.Decimal `json:"base_cost"`
	Currency     Currency        `json:"currency"`
	Alternatives []Alternative   `json:"alternatives"`
}

// Recommendation is the engine's verdict for one subscription.
// Alternative is nil when the tool is unknown or nothing is cheaper;
// SavingsUSD is then zero.
type Recommendation struct {
	Subscription Subscription    `json:"subscription"`
	Alternative  *Alternative    `json:"alternative,omitempty"`
	SavingsUSD   decimal.Decimal `json:"savings_usd"`
}

// HasAlternative reports whether a cheaper alternative was found
func (r Recommendation) HasAlternative() bool {
	return r.Alternative != nil
}

// Report is a fully computed audit, ready for rendering
type Report struct {
	ID           string           `json:"id"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Rows         []Recommendation `json:"rows"`
	TotalSavings decimal.Decimal  `json:"total_savings_usd"`
}

// NewReport builds a report and totals the per-row savings exactly
func NewReport(id string, generatedAt time.Time, rows []Recommendation) *Report {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.SavingsUSD)
	}
	return &Report{
		ID:           id,
		GeneratedAt:  generatedAt,
		Rows:         rows,
		TotalSavings: total,
	}
}
