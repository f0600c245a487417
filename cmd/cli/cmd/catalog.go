// Package cmd - catalog commands
package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"subscription-audit/core/engine"
	"subscription-audit/core/pricing"
	"subscription-audit/core/types"
	"subscription-audit/internal/errors"
)

// catalogCmd groups catalog inspection commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the pricing catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine.FromConfig(effectiveConfig())
		if err != nil {
			return err
		}
		return printCatalogList(cmd.OutOrStdout(), eng.Catalog().Entries())
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <tool>",
	Short: "Show a tool and its alternatives with USD equivalents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine.FromConfig(effectiveConfig())
		if err != nil {
			return err
		}
		entry, ok := eng.Catalog().Lookup(args[0])
		if !ok {
			return errors.NotFound("catalog entry", args[0])
		}
		return printCatalogEntry(cmd.OutOrStdout(), entry, eng.Converter())
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "external catalog file (.hcl, .yaml)")
	catalogShowCmd.Flags().Float64Var(&gbpRate, "gbp-rate", 0, "override the GBP to USD conversion rate")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}

func newTable(headers ...string) *table.Table {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.ASCIIBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers(headers...)
}

func printCatalogList(w io.Writer, entries []types.CatalogEntry) error {
	t := newTable("TOOL", "LIST PRICE", "ALTERNATIVES")
	for _, e := range entries {
		t.Row(e.Key, types.FormatAmount(e.Currency, e.BaseCost), strconv.Itoa(len(e.Alternatives)))
	}
	_, err := fmt.Fprintf(w, "%s\n%d tools\n", t.Render(), len(entries))
	return err
}

func printCatalogEntry(w io.Writer, e types.CatalogEntry, conv *pricing.Converter) error {
	t := newTable("ALTERNATIVE", "COST", "USD EQUIVALENT", "NOTES")
	for _, alt := range e.Alternatives {
		t.Row(
			alt.Name,
			types.FormatAmount(alt.Currency, alt.Cost),
			types.FormatUSD(conv.ToUSD(alt.Cost, alt.Currency)),
			alt.Notes,
		)
	}
	_, err := fmt.Fprintf(w, "%s: %s (%s)\n%s\n",
		e.Key,
		types.FormatAmount(e.Currency, e.BaseCost),
		types.FormatUSD(conv.ToUSD(e.BaseCost, e.Currency)),
		t.Render())
	return err
}
