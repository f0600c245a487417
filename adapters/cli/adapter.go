// Package adapter provides the thin command-line adapter over the audit pipeline.
// It handles input/output only; all logic is in the engine.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"subscription-audit/adapters/storage"
	"subscription-audit/adapters/webhook"
	"subscription-audit/core/audit"
	"subscription-audit/core/output"
	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// NoValidInputMessage is printed when nothing in the input could be parsed
const NoValidInputMessage = "No valid subscriptions provided."

// CLIAdapter is a thin wrapper around the auditor
type CLIAdapter struct {
	auditor    *audit.Auditor
	formatters *output.Registry
	storage    config.StorageConfig
	notifier   *webhook.Adapter
	stdout     io.Writer
	stderr     io.Writer
}

// NewCLIAdapter creates a new CLI adapter
func NewCLIAdapter(auditor *audit.Auditor, storageCfg config.StorageConfig) *CLIAdapter {
	return &CLIAdapter{
		auditor:    auditor,
		formatters: output.DefaultRegistry(),
		storage:    storageCfg,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetOutput sets the report and diagnostic writers
func (a *CLIAdapter) SetOutput(stdout, stderr io.Writer) {
	a.stdout = stdout
	a.stderr = stderr
}

// SetNotifier enables the post-audit webhook
func (a *CLIAdapter) SetNotifier(n *webhook.Adapter) {
	a.notifier = n
}

// CLIRequest is the CLI input
type CLIRequest struct {
	// Subscriptions is the raw Name=cost list
	Subscriptions string

	// Format is the report format name
	Format string

	// Output is an optional destination; empty prints to stdout
	Output string
}

// Run audits the request and delivers the report
func (a *CLIAdapter) Run(ctx context.Context, req *CLIRequest) error {
	formatter, err := a.formatters.Get(req.Format)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid --format", err)
	}

	outcome, err := a.auditor.Run(req.Subscriptions)
	for _, issue := range outcome.Issues {
		fmt.Fprintln(a.stderr, issue.String())
	}
	if err != nil {
		if errors.IsType(err, errors.TypeNoValidInput) {
			fmt.Fprintln(a.stderr, NoValidInputMessage)
		}
		return err
	}

	data, err := output.RenderBytes(formatter, outcome.Report)
	if err != nil {
		return errors.Wrap(errors.TypeRender, "failed to render report", err)
	}

	if err := a.deliver(ctx, req.Output, data, formatter); err != nil {
		return err
	}

	// the report is already delivered, so a failed notification only warns
	if a.notifier != nil {
		if err := a.notifier.Send(ctx, webhook.NewPayload(outcome)); err != nil {
			fmt.Fprintf(a.stderr, "Warning: %v\n", err)
		}
	}
	return nil
}

func (a *CLIAdapter) deliver(ctx context.Context, dest string, data []byte, formatter output.Formatter) error {
	if dest == "" {
		_, err := a.stdout.Write(data)
		return err
	}

	sink, err := storage.Open(ctx, dest, a.storage)
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, data, formatter.ContentType()); err != nil {
		return err
	}

	logging.Info("report written",
		zap.String("location", sink.Location()),
		zap.String("format", string(formatter.Format())))
	return nil
}
