// Package main is the entry point for the subaudit CLI.
package main

import (
	"os"

	"subscription-audit/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
