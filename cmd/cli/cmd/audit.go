// Package cmd - audit command
package cmd

import (
	"github.com/spf13/cobra"

	adapter "subscription-audit/adapters/cli"
	"subscription-audit/adapters/webhook"
	"subscription-audit/core/audit"
	"subscription-audit/core/engine"
	"subscription-audit/internal/config"
)

var (
	subscriptionsArg string
	outputDest       string
	outputFormat     string
	catalogPath      string
	gbpRate          float64
	notifyURL        string
	notifyProvider   string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit subscriptions and report cheaper alternatives",
	Long: `Parse a comma-separated list of Name=cost pairs (monthly cost), compare each
against the catalog and produce a report of cheaper alternatives.

Malformed items are reported on stderr and skipped. The command fails when no
item could be parsed.

The output destination may be a file path, s3://bucket/key or
azblob://container/blob.

With --notify (or notify.endpoint in the config file) a summary is posted to a
Slack, Microsoft Teams or custom webhook once the report is written.

Examples:
  subaudit audit --subscriptions "Zoom=15.99, Notion=12"
  subaudit audit -s "Zoom=15.99" --output my_report.md
  subaudit audit -s "Zoom=15.99" --format html --output s3://reports/audit.html`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&subscriptionsArg, "subscriptions", "s", "", "comma-separated list of Name=cost pairs (monthly cost)")
	auditCmd.Flags().StringVarP(&outputDest, "output", "o", "", "write the report to a file or object store instead of stdout")
	auditCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (markdown, json, yaml, html, table); default from config")
	auditCmd.Flags().StringVar(&catalogPath, "catalog", "", "external catalog file (.hcl, .yaml)")
	auditCmd.Flags().Float64Var(&gbpRate, "gbp-rate", 0, "override the GBP to USD conversion rate")
	auditCmd.Flags().StringVar(&notifyURL, "notify", "", "post a summary to this webhook URL")
	auditCmd.Flags().StringVar(&notifyProvider, "notify-provider", "", "webhook payload shape (slack, teams, custom)")
	_ = auditCmd.MarkFlagRequired("subscriptions")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	eng, err := engine.FromConfig(cfg)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	cli := adapter.NewCLIAdapter(audit.New(eng), cfg.Storage)
	cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if cfg.Notify.Endpoint != "" {
		cli.SetNotifier(webhook.New(cfg.Notify))
	}

	return cli.Run(cmd.Context(), &adapter.CLIRequest{
		Subscriptions: subscriptionsArg,
		Format:        format,
		Output:        outputDest,
	})
}

// effectiveConfig applies command-line overrides to a copy of the loaded config
func effectiveConfig() *config.Config {
	cfg := *config.Get()
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if gbpRate != 0 {
		cfg.Currency.GBPToUSD = gbpRate
	}
	if notifyURL != "" {
		cfg.Notify.Endpoint = notifyURL
	}
	if notifyProvider != "" {
		cfg.Notify.Provider = notifyProvider
	}
	return &cfg
}
