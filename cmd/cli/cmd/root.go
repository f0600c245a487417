// Package cmd provides the CLI commands for subaudit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// Version is the CLI version, overridable at link time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "subaudit",
	Short: "Find cheaper alternatives to your SaaS subscriptions",
	Long: `subaudit compares what you pay for SaaS tools against a catalog of
known cheaper alternatives and reports the potential monthly savings.

Examples:
  subaudit audit --subscriptions "Zoom=15.99, Notion=12, Figma=15"
  subaudit audit -s "Slack=8.75" --output report.md
  subaudit audit -s "Xero=33" --format json
  subaudit catalog list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()

	err := rootCmd.Execute()
	if err != nil && !errors.IsType(err, errors.TypeNoValidInput) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/subaudit/subaudit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "subaudit version %s\n", Version)
	},
}
