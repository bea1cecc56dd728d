package api

import (
	"errors"
	"net/http"
	"strconv"

	"tradedesk/internal/analysis"
	"tradedesk/internal/model"
	"tradedesk/internal/portfolio"
	"tradedesk/internal/stream"
)

// analyzeResponse carries the analysis result plus the pre-rendered
// presentation strings, so the frontend does no further computation.
type analyzeResponse struct {
	Result  *model.AnalysisResult `json:"result"`
	Summary string                `json:"summary"`
	Alerts  []string              `json:"alerts"`
}

// handleAnalyze runs one analysis: POST /api/v1/analyze?symbol=X&interval=1d
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "Select a pair")
		return
	}

	interval := model.IntervalDay
	if raw := r.URL.Query().Get("interval"); raw != "" {
		var err error
		interval, err = model.ParseInterval(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := s.analyzer.Analyze(r.Context(), symbol, interval)
	if err != nil {
		s.writeAnalysisError(w, symbol, err)
		return
	}

	if s.hub != nil {
		s.hub.Publish(stream.EventAnalysis, res)
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		Result:  res,
		Summary: Summary(res.Setup),
		Alerts:  AlertMessages(res.Alerts),
	})
}

// writeAnalysisError downgrades typed analysis failures to the dashboard's
// human-readable status strings. This is the only place raw errors become
// user-facing text.
func (s *Server) writeAnalysisError(w http.ResponseWriter, symbol string, err error) {
	s.log.Warn("analysis failed", "symbol", symbol, "err", err)
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Select a pair")
	case errors.Is(err, analysis.ErrDataUnavailable):
		writeError(w, http.StatusNotFound, "No data available.")
	case errors.Is(err, analysis.ErrProvider):
		writeError(w, http.StatusBadGateway, "Market data provider unavailable.")
	default:
		writeError(w, http.StatusInternalServerError, "Analysis failed.")
	}
}

// portfolioResponse is the portfolio risk table view.
type portfolioResponse struct {
	Rows             []portfolio.Row `json:"rows"`
	Capital          float64         `json:"capital"`
	RiskPct          float64         `json:"risk_pct"`
	RemainingCapital float64         `json:"remaining_capital"`
}

// handlePortfolio renders the ledger as a risk table:
// GET /api/v1/portfolio?capital=500&risk_pct=0.02
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	capital, err := queryFloat(r, "capital", portfolio.DefaultCapital)
	if err != nil || capital <= 0 {
		writeError(w, http.StatusBadRequest, "capital must be a positive number")
		return
	}
	riskPct, err := queryFloat(r, "risk_pct", portfolio.DefaultRiskPct)
	if err != nil || riskPct <= 0 || riskPct >= 1 {
		writeError(w, http.StatusBadRequest, "risk_pct must be between 0 and 1")
		return
	}

	rows, remaining := portfolio.Compute(s.ledger.Snapshot(), capital, riskPct)
	writeJSON(w, http.StatusOK, portfolioResponse{
		Rows:             rows,
		Capital:          capital,
		RiskPct:          riskPct,
		RemainingCapital: remaining,
	})
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
