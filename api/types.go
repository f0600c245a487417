// Package api - API types for the audit endpoints.
// The API is stateless: every request is an independent audit.
package api

import (
	"encoding/json"

	"subscription-audit/core/input"
)

// AuditRequest is the input to POST /audit
type AuditRequest struct {
	// Subscriptions is the comma-separated Name=cost list
	Subscriptions string `json:"subscriptions"`

	// Format selects the response document; empty or "json" returns AuditResponse
	Format string `json:"format,omitempty"`
}

// AuditResponse is the JSON response of POST /audit
type AuditResponse struct {
	RequestID string          `json:"request_id"`
	Report    json.RawMessage `json:"report,omitempty"`
	Issues    []input.Issue   `json:"issues,omitempty"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	RequestID string        `json:"request_id,omitempty"`
	Error     ErrorDetail   `json:"error"`
	Issues    []input.Issue `json:"issues,omitempty"`
}

// ErrorDetail describes an API error
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CatalogEntryResponse is one tool in GET /catalog
type CatalogEntryResponse struct {
	Key          string                `json:"key"`
	Cost         string                `json:"cost"`
	Currency     string                `json:"currency"`
	Alternatives []AlternativeResponse `json:"alternatives"`
}

// AlternativeResponse is one alternative in GET /catalog
type AlternativeResponse struct {
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	Currency string `json:"currency"`
	CostUSD  string `json:"cost_usd"`
	Notes    string `json:"notes,omitempty"`
}
