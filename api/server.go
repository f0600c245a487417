// Package api - Thin HTTP layer over the audit pipeline.
// The API is ONLY responsible for request decoding, orchestration and
// response serialization; it never computes savings itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"subscription-audit/core/audit"
	"subscription-audit/core/engine"
	"subscription-audit/core/output"
	"subscription-audit/internal/logging"
)

// maxRequestBytes bounds POST bodies
const maxRequestBytes = 1 << 20

// Server is the API server
type Server struct {
	engine     *engine.Engine
	auditor    *audit.Auditor
	formatters *output.Registry
	mux        *http.ServeMux
	version    string
}

// NewServer creates a new API server
func NewServer(version string, eng *engine.Engine, opts ...audit.Option) *Server {
	s := &Server{
		engine:     eng,
		auditor:    audit.New(eng, opts...),
		formatters: output.DefaultRegistry(),
		mux:        http.NewServeMux(),
		version:    version,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /audit", s.handleAudit)
	s.mux.HandleFunc("GET /catalog", s.handleCatalog)
	s.mux.HandleFunc("GET /catalog/{tool}", s.handleCatalogEntry)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	logging.Debug("request served",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("duration", time.Since(start)))
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, requestID, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		RequestID: requestID,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}, status)
}

func generateRequestID() string {
	return uuid.NewString()
}
