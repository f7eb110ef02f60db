package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultGenerateLimit = 10
	generateTimeout      = 10 * time.Minute
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate schedules a background prediction cycle and returns
// immediately. A synchronous wait would exceed any reasonable caller
// timeout, so the response never carries a CycleReport.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultGenerateLimit
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	autoSignals := true
	if v := q.Get("auto_signals"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			autoSignals = b
		}
	}

	// auto_trades defaults to false: live order placement is never implied
	// by a bare trigger call.
	autoTrades := false
	if v := q.Get("auto_trades"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			autoTrades = b
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		report := s.runner.RunCycle(ctx, limit, autoSignals, autoTrades)
		s.log.Info().
			Int("markets_considered", report.MarketsConsidered).
			Int("predictions_saved", report.PredictionsSaved).
			Int("signals_created", report.SignalsCreated).
			Int("trades_created", report.TradesCreated).
			Int("errors", report.Errors).
			Msg("prediction cycle finished")
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":       "started",
		"limit":        limit,
		"auto_signals": autoSignals,
		"auto_trades":  autoTrades,
	})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := s.storage.ListMarkets(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, markets)
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	preds, err := s.storage.ListPredictions(r.Context(), listLimit(r, 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, preds)
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	signals, err := s.storage.ListSignals(r.Context(), listLimit(r, 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, signals)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.storage.ListTrades(r.Context(), listLimit(r, 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handlePortfolioLatest(w http.ResponseWriter, r *http.Request) {
	paperTrading := true
	if v := r.URL.Query().Get("paper_trading"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			paperTrading = b
		}
	}

	snap, err := s.storage.LatestPortfolioSnapshot(r.Context(), paperTrading)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "no portfolio snapshot recorded yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func listLimit(r *http.Request, def int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
