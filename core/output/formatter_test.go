package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"subscription-audit/core/types"
)

func sampleReport() *types.Report {
	return types.NewReport("report-1", time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC), []types.Recommendation{
		{
			Subscription: types.Subscription{Name: "Zoom", MonthlyCost: decimal.RequireFromString("15.99")},
			Alternative: &types.Alternative{
				Name:     "Microsoft Teams",
				Cost:     decimal.RequireFromString("4.90"),
				Currency: types.CurrencyGBP,
				Notes:    "Business Basic plan",
			},
			SavingsUSD: decimal.RequireFromString("10.11"),
		},
		{
			Subscription: types.Subscription{Name: "UnknownTool", MonthlyCost: decimal.NewFromInt(50)},
			SavingsUSD:   decimal.Zero,
		},
		{
			Subscription: types.Subscription{Name: "Notion", MonthlyCost: decimal.NewFromInt(12)},
			Alternative: &types.Alternative{
				Name:     "Focalboard",
				Cost:     decimal.Zero,
				Currency: types.CurrencyUSD,
				Notes:    "Free self-hosted project management",
			},
			SavingsUSD: decimal.NewFromInt(12),
		},
	})
}

func TestMarkdown_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Render(&buf, sampleReport()))

	want := "# Subscription Audit Report\n" +
		"\n" +
		"Date: 2025-07-01\n" +
		"\n" +
		"This report summarises your current subscription spend and suggests cheaper alternatives where available.\n" +
		"\n" +
		"| Current Tool | Your Cost (monthly) | Recommended Alternative | Alt Cost | Savings | Notes |\n" +
		"| --- | --- | --- | --- | --- | --- |\n" +
		"| Zoom | $ 15.99 | Microsoft Teams | GBP 4.90 | $ 10.11 | Business Basic plan |\n" +
		"| UnknownTool | $ 50.00 | — | — | $ 0.00 | No cheaper alternative found |\n" +
		"| Notion | $ 12.00 | Focalboard | USD 0.00 | $ 12.00 | Free self-hosted project management |\n" +
		"\n" +
		"**Total potential monthly savings: $ 22.11**\n"

	assert.Equal(t, want, buf.String())
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	report := types.NewReport("r", time.Now(), []types.Recommendation{
		{Subscription: types.Subscription{Name: "a|b", MonthlyCost: decimal.NewFromInt(1)}},
	})

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Render(&buf, report))
	assert.Contains(t, buf.String(), `| a\|b | $ 1.00 |`)
}

func TestNewReport_TotalIsExactSum(t *testing.T) {
	rows := []types.Recommendation{
		{SavingsUSD: decimal.RequireFromString("0.005")},
		{SavingsUSD: decimal.RequireFromString("0.005")},
		{SavingsUSD: decimal.RequireFromString("53.991")},
	}
	report := types.NewReport("r", time.Now(), rows)
	assert.True(t, report.TotalSavings.Equal(decimal.RequireFromString("54.001")))
	assert.Equal(t, "54.00", report.TotalSavings.StringFixed(2))
}

func TestJSON_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Render(&buf, sampleReport()))

	var view reportView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "report-1", view.ID)
	assert.Equal(t, "2025-07-01", view.Date)
	assert.Equal(t, "22.11", view.TotalSavings)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "Microsoft Teams", view.Rows[0].Alternative)
	assert.Equal(t, "GBP", view.Rows[0].AlternativeCurrency)
	assert.Empty(t, view.Rows[1].Alternative)
	assert.Equal(t, "0.00", view.Rows[1].SavingsUSD)
}

func TestYAML_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter().Render(&buf, sampleReport()))

	var view reportView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "22.11", view.TotalSavings)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "Notion", view.Rows[2].Tool)
	assert.Equal(t, "12.00", view.Rows[2].SavingsUSD)
}

func TestHTML_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Render(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "<title>Subscription Audit Report</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Microsoft Teams")
	assert.Contains(t, out, "<strong>Total potential monthly savings: $ 22.11</strong>")
}

func TestTable_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Render(&buf, sampleReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Subscription Audit Report (2025-07-01)\n"))
	assert.Contains(t, out, "Microsoft Teams")
	assert.Contains(t, out, "No cheaper alternative found")
	assert.Contains(t, out, "Total potential monthly savings: $ 22.11")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"html", "json", "markdown", "table", "yaml"}, r.Names())

	f, err := r.Get("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f.Format())

	f, err = r.Get(" json ")
	require.NoError(t, err)
	assert.Equal(t, "application/json", f.ContentType())

	_, err = r.Get("pdf")
	assert.Error(t, err)
}
