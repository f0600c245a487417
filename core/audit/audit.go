// Package audit runs the parse → recommend → report pipeline.
package audit

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"subscription-audit/core/engine"
	"subscription-audit/core/input"
	"subscription-audit/core/types"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// Auditor turns a raw subscription list into a report
type Auditor struct {
	engine *engine.Engine
	now    func() time.Time
	newID  func() string
}

// Option configures an Auditor
type Option func(*Auditor)

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(a *Auditor) {
		a.now = now
	}
}

// WithIDGenerator overrides report ID generation
func WithIDGenerator(newID func() string) Option {
	return func(a *Auditor) {
		a.newID = newID
	}
}

// New creates an auditor
func New(eng *engine.Engine, opts ...Option) *Auditor {
	a := &Auditor{
		engine: eng,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Outcome is the result of one audit run
type Outcome struct {
	// Report is nil when no subscription could be parsed
	Report *types.Report `json:"report,omitempty"`

	// Issues lists skipped input segments
	Issues []input.Issue `json:"issues,omitempty"`
}

// Run audits raw. Malformed segments are skipped and returned as issues.
// If nothing parses, Run returns a NO_VALID_INPUT error together with an
// Outcome carrying the issues and no report.
func (a *Auditor) Run(raw string) (*Outcome, error) {
	parsed := input.Parse(raw)
	outcome := &Outcome{Issues: parsed.Issues}

	// callers print the diagnostics themselves
	for _, issue := range parsed.Issues {
		logging.Info("skipped input item",
			zap.String("type", string(issue.Type)),
			zap.String("segment", issue.Segment))
	}

	if len(parsed.Subscriptions) == 0 {
		return outcome, errors.NoValidInput()
	}

	rows := a.engine.RecommendAll(parsed.Subscriptions)
	outcome.Report = types.NewReport(a.newID(), a.now(), rows)

	logging.Info("audit complete",
		zap.String("report_id", outcome.Report.ID),
		zap.Int("subscriptions", len(rows)),
		zap.Int("skipped", len(parsed.Issues)),
		zap.String("total_savings_usd", outcome.Report.TotalSavings.StringFixed(2)))

	return outcome, nil
}
