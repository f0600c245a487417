package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"subscription-audit/core/types"
)

// TableFormatter renders the report as a bordered terminal table
type TableFormatter struct{}

// NewTableFormatter creates a table formatter
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Format returns FormatTable
func (f *TableFormatter) Format() Format {
	return FormatTable
}

// ContentType returns the plain text MIME type
func (f *TableFormatter) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the report as a terminal table
func (f *TableFormatter) Render(w io.Writer, report *types.Report) error {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers(tableHeader...)

	for _, rec := range report.Rows {
		t.Row(cells(rec)...)
	}

	_, err := fmt.Fprintf(w, "%s (%s)\n%s\nTotal potential monthly savings: %s\n",
		reportTitle,
		report.GeneratedAt.Format(dateLayout),
		t.Render(),
		types.FormatUSD(report.TotalSavings))
	return err
}
