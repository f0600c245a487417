// Package webhook posts a summary of a finished audit to Slack, Microsoft
// Teams or a custom JSON endpoint.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"subscription-audit/core/audit"
	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// Provider is a webhook provider type
type Provider string

const (
	ProviderSlack  Provider = "slack"
	ProviderTeams  Provider = "teams"
	ProviderCustom Provider = "custom"
)

// SignatureHeader carries the hex HMAC-SHA256 of custom payloads
const SignatureHeader = "X-Signature"

// EventAuditCompleted is the only event sent today
const EventAuditCompleted = "audit.completed"

// Adapter is the webhook adapter
type Adapter struct {
	provider   Provider
	endpoint   string
	secret     string
	retryCount int
	retryDelay time.Duration
	httpClient *http.Client
}

// New creates a webhook adapter from the notify config
func New(cfg config.NotifyConfig) *Adapter {
	return &Adapter{
		provider:   Provider(cfg.Provider),
		endpoint:   cfg.Endpoint,
		secret:     cfg.Secret,
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Payload is the custom webhook body
type Payload struct {
	Event           string           `json:"event"`
	ReportID        string           `json:"report_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Subscriptions   int              `json:"subscriptions"`
	Skipped         int              `json:"skipped"`
	TotalSavingsUSD string           `json:"total_savings_usd"`
	Savings         []SavingsPayload `json:"savings"`
}

// SavingsPayload is one subscription with a cheaper alternative
type SavingsPayload struct {
	Tool        string `json:"tool"`
	Alternative string `json:"alternative"`
	SavingsUSD  string `json:"savings_usd"`
}

// NewPayload summarises an audit outcome. Rows without an alternative are left out.
func NewPayload(outcome *audit.Outcome) *Payload {
	report := outcome.Report
	p := &Payload{
		Event:           EventAuditCompleted,
		ReportID:        report.ID,
		GeneratedAt:     report.GeneratedAt,
		Subscriptions:   len(report.Rows),
		Skipped:         len(outcome.Issues),
		TotalSavingsUSD: report.TotalSavings.StringFixed(2),
		Savings:         []SavingsPayload{},
	}
	for _, row := range report.Rows {
		if !row.HasAlternative() {
			continue
		}
		p.Savings = append(p.Savings, SavingsPayload{
			Tool:        row.Subscription.Name,
			Alternative: row.Alternative.Name,
			SavingsUSD:  row.SavingsUSD.StringFixed(2),
		})
	}
	return p
}

// Send delivers the payload, retrying failed attempts after RetryDelay
func (a *Adapter) Send(ctx context.Context, payload *Payload) error {
	body, err := a.formatPayload(payload)
	if err != nil {
		return errors.Wrap(errors.TypeNotify, "failed to format payload", err)
	}

	var lastErr error
	for attempt := 0; attempt <= a.retryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Wrap(errors.TypeNotify, "webhook cancelled", ctx.Err())
			case <-time.After(a.retryDelay):
			}
		}

		if lastErr = a.sendOnce(ctx, body); lastErr == nil {
			logging.Debug("webhook delivered",
				zap.String("provider", string(a.provider)),
				zap.Int("attempt", attempt+1))
			return nil
		}
		logging.Warn("webhook attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr))
	}

	return errors.Wrapf(errors.TypeNotify, lastErr, "webhook failed after %d attempts", a.retryCount+1)
}

func (a *Adapter) sendOnce(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if a.secret != "" && a.provider == ProviderCustom {
		req.Header.Set(SignatureHeader, Sign(body, a.secret))
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

func (a *Adapter) formatPayload(payload *Payload) ([]byte, error) {
	switch a.provider {
	case ProviderSlack:
		return formatSlack(payload)
	case ProviderTeams:
		return formatTeams(payload)
	default:
		return json.Marshal(payload)
	}
}

func summary(payload *Payload) string {
	return fmt.Sprintf("Subscription audit: $ %s/month potential savings", payload.TotalSavingsUSD)
}

// formatSlack builds a legacy attachment message
func formatSlack(payload *Payload) ([]byte, error) {
	color := "good"
	if len(payload.Savings) > 0 {
		color = "warning"
	}

	fields := []map[string]interface{}{
		{"title": "Subscriptions", "value": fmt.Sprintf("%d", payload.Subscriptions), "short": true},
		{"title": "Skipped", "value": fmt.Sprintf("%d", payload.Skipped), "short": true},
	}
	for _, s := range payload.Savings {
		fields = append(fields, map[string]interface{}{
			"title": s.Tool,
			"value": fmt.Sprintf("%s saves $ %s", s.Alternative, s.SavingsUSD),
			"short": false,
		})
	}

	return json.Marshal(map[string]interface{}{
		"attachments": []map[string]interface{}{
			{
				"color":  color,
				"title":  summary(payload),
				"fields": fields,
				"footer": "Report " + payload.ReportID,
				"ts":     payload.GeneratedAt.Unix(),
			},
		},
	})
}

// formatTeams builds a MessageCard
func formatTeams(payload *Payload) ([]byte, error) {
	facts := []map[string]interface{}{
		{"name": "Total savings", "value": "$ " + payload.TotalSavingsUSD},
		{"name": "Subscriptions", "value": fmt.Sprintf("%d", payload.Subscriptions)},
	}
	for _, s := range payload.Savings {
		facts = append(facts, map[string]interface{}{
			"name":  s.Tool,
			"value": fmt.Sprintf("%s ($ %s)", s.Alternative, s.SavingsUSD),
		})
	}

	return json.Marshal(map[string]interface{}{
		"@type":    "MessageCard",
		"@context": "http://schema.org/extensions",
		"summary":  summary(payload),
		"sections": []map[string]interface{}{
			{
				"activityTitle": "$ " + payload.TotalSavingsUSD + " potential monthly savings",
				"facts":         facts,
			},
		},
	})
}

// Sign returns the hex HMAC-SHA256 of payload
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an incoming webhook signature
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(Sign(payload, secret)))
}
