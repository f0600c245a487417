package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"subscription-audit/core/types"
)

const (
	reportTitle       = "Subscription Audit Report"
	reportDescription = "This report summarises your current subscription spend and suggests cheaper alternatives where available."
	dateLayout        = "2006-01-02"

	placeholder      = "—"
	noAlternativeMsg = "No cheaper alternative found"
)

var tableHeader = []string{
	"Current Tool",
	"Your Cost (monthly)",
	"Recommended Alternative",
	"Alt Cost",
	"Savings",
	"Notes",
}

// MarkdownFormatter renders the report as a markdown document
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// ContentType returns the markdown MIME type
func (f *MarkdownFormatter) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Render writes the title, date, description, one table row per subscription
// in input order, and the bold total line.
func (f *MarkdownFormatter) Render(w io.Writer, report *types.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\nDate: %s\n\n", reportTitle, report.GeneratedAt.Format(dateLayout))
	fmt.Fprintf(bw, "%s\n\n", reportDescription)
	writeMarkdownRow(bw, tableHeader)
	separators := make([]string, len(tableHeader))
	for i := range separators {
		separators[i] = "---"
	}
	writeMarkdownRow(bw, separators)

	for _, row := range report.Rows {
		writeMarkdownRow(bw, cells(row))
	}

	fmt.Fprintf(bw, "\n**Total potential monthly savings: %s**\n", types.FormatUSD(report.TotalSavings))
	return bw.Flush()
}

func writeMarkdownRow(w io.Writer, values []string) {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = strings.ReplaceAll(v, "|", `\|`)
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
}

// cells returns the display columns for one row, shared by the text formats
func cells(rec types.Recommendation) []string {
	current := types.FormatUSD(rec.Subscription.MonthlyCost)
	if !rec.HasAlternative() {
		return []string{
			rec.Subscription.Name,
			current,
			placeholder,
			placeholder,
			types.FormatUSD(rec.SavingsUSD),
			noAlternativeMsg,
		}
	}
	alt := rec.Alternative
	return []string{
		rec.Subscription.Name,
		current,
		alt.Name,
		types.FormatAmount(alt.Currency, alt.Cost),
		types.FormatUSD(rec.SavingsUSD),
		alt.Notes,
	}
}
