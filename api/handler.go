// Package api - HTTP handlers
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subscription-audit/core/output"
	"subscription-audit/core/types"
	"subscription-audit/internal/errors"
)

// handleAudit handles POST /audit
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	var req AuditRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.writeError(w, requestID, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		format = string(output.FormatJSON)
	}
	formatter, err := s.formatters.Get(format)
	if err != nil {
		s.writeError(w, requestID, string(errors.TypeInput), err.Error(), http.StatusBadRequest)
		return
	}

	outcome, err := s.auditor.Run(req.Subscriptions)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsType(err, errors.TypeNoValidInput) {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, ErrorResponse{
			RequestID: requestID,
			Error: ErrorDetail{
				Code:    string(errors.TypeOf(err)),
				Message: err.Error(),
			},
			Issues: outcome.Issues,
		}, status)
		return
	}

	body, err := output.RenderBytes(formatter, outcome.Report)
	if err != nil {
		s.writeError(w, requestID, string(errors.TypeRender), err.Error(), http.StatusInternalServerError)
		return
	}

	if formatter.Format() == output.FormatJSON {
		s.writeJSON(w, AuditResponse{
			RequestID: requestID,
			Report:    body,
			Issues:    outcome.Issues,
		}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", formatter.ContentType())
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("X-Skipped-Items", strconv.Itoa(len(outcome.Issues)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// handleCatalog handles GET /catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	entries := s.engine.Catalog().Entries()
	resp := make([]CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, s.catalogEntryResponse(e))
	}
	s.writeJSON(w, map[string]interface{}{
		"tools": resp,
		"count": len(resp),
	}, http.StatusOK)
}

// handleCatalogEntry handles GET /catalog/{tool}
func (s *Server) handleCatalogEntry(w http.ResponseWriter, r *http.Request) {
	tool := r.PathValue("tool")
	entry, ok := s.engine.Catalog().Lookup(tool)
	if !ok {
		s.writeError(w, "", string(errors.TypeNotFound), "unknown tool: "+tool, http.StatusNotFound)
		return
	}
	s.writeJSON(w, s.catalogEntryResponse(entry), http.StatusOK)
}

func (s *Server) catalogEntryResponse(e types.CatalogEntry) CatalogEntryResponse {
	conv := s.engine.Converter()
	out := CatalogEntryResponse{
		Key:          e.Key,
		Cost:         e.BaseCost.StringFixed(2),
		Currency:     e.Currency.String(),
		Alternatives: make([]AlternativeResponse, 0, len(e.Alternatives)),
	}
	for _, alt := range e.Alternatives {
		out.Alternatives = append(out.Alternatives, AlternativeResponse{
			Name:     alt.Name,
			Cost:     alt.Cost.StringFixed(2),
			Currency: alt.Currency.String(),
			CostUSD:  conv.ToUSD(alt.Cost, alt.Currency).StringFixed(2),
			Notes:    strings.TrimSpace(alt.Notes),
		})
	}
	return out
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":        "healthy",
		"version":       s.version,
		"catalog_tools": s.engine.Catalog().Len(),
		"time":          time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "subscription-audit",
		"api_version": "v1",
	}, http.StatusOK)
}
