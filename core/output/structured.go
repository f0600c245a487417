package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"subscription-audit/core/types"
)

// reportView is the document shape shared by the JSON and YAML formats.
// Amounts are fixed to two decimals, matching the text formats.
type reportView struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Date         string    `json:"date" yaml:"date"`
	Rows         []rowView `json:"rows" yaml:"rows"`
	TotalSavings string    `json:"total_savings_usd" yaml:"total_savings_usd"`
}

type rowView struct {
	Tool                string `json:"tool" yaml:"tool"`
	MonthlyCostUSD      string `json:"monthly_cost_usd" yaml:"monthly_cost_usd"`
	Alternative         string `json:"alternative,omitempty" yaml:"alternative,omitempty"`
	AlternativeCost     string `json:"alternative_cost,omitempty" yaml:"alternative_cost,omitempty"`
	AlternativeCurrency string `json:"alternative_currency,omitempty" yaml:"alternative_currency,omitempty"`
	SavingsUSD          string `json:"savings_usd" yaml:"savings_usd"`
	Notes               string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func newReportView(report *types.Report) reportView {
	view := reportView{
		ID:           report.ID,
		Title:        reportTitle,
		Date:         report.GeneratedAt.Format(dateLayout),
		Rows:         make([]rowView, 0, len(report.Rows)),
		TotalSavings: report.TotalSavings.StringFixed(2),
	}
	for _, rec := range report.Rows {
		row := rowView{
			Tool:           rec.Subscription.Name,
			MonthlyCostUSD: rec.Subscription.MonthlyCost.StringFixed(2),
			SavingsUSD:     rec.SavingsUSD.StringFixed(2),
		}
		if rec.HasAlternative() {
			row.Alternative = rec.Alternative.Name
			row.AlternativeCost = rec.Alternative.Cost.StringFixed(2)
			row.AlternativeCurrency = rec.Alternative.Currency.String()
			row.Notes = rec.Alternative.Notes
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// ContentType returns the JSON MIME type
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// Render writes the report as JSON
func (f *JSONFormatter) Render(w io.Writer, report *types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newReportView(report))
}

// YAMLFormatter renders the report as YAML
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format returns FormatYAML
func (f *YAMLFormatter) Format() Format {
	return FormatYAML
}

// ContentType returns the YAML MIME type
func (f *YAMLFormatter) ContentType() string {
	return "application/yaml"
}

// Render writes the report as YAML
func (f *YAMLFormatter) Render(w io.Writer, report *types.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newReportView(report)); err != nil {
		return err
	}
	return enc.Close()
}
