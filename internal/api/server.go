// Package api provides the HTTP handlers of the dashboard backend.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"tradedesk/internal/ledger"
	"tradedesk/internal/model"
	"tradedesk/internal/stream"
)

// Analyzer runs one analysis cycle. Implemented by analysis.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, interval model.Interval) (*model.AnalysisResult, error)
}

// Server wires the HTTP routes of the dashboard API.
type Server struct {
	analyzer Analyzer
	ledger   *ledger.Ledger
	hub      *stream.Hub // optional
	log      *slog.Logger
}

// NewServer creates a Server. hub may be nil, which disables /stream.
func NewServer(a Analyzer, l *ledger.Ledger, hub *stream.Hub, log *slog.Logger) *Server {
	return &Server{analyzer: a, ledger: l, hub: hub, log: log}
}

// Router sets up the HTTP routes.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/v1/portfolio", s.handlePortfolio)
	if s.hub != nil {
		mux.HandleFunc("/api/v1/stream", s.hub.ServeWS)
	}

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
