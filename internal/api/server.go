// Package api provides the read-only HTTP API for observing a live run.
// The simulation itself is single-threaded; the server never reaches into
// the engine. It keeps its own snapshot copy, fed through the runner's
// per-step callback, so handlers can serve concurrently without locking the
// engine.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/talgya/asdm/internal/config"
	"github.com/talgya/asdm/internal/engine"
)

// Server serves simulation state over HTTP.
type Server struct {
	Cfg  config.Config
	Port int

	mu      sync.RWMutex
	history engine.History
	running bool
}

// Observe appends a completed step's snapshot. Wire it to Runner.OnStep.
func (s *Server) Observe(snap engine.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, snap)
}

// SetRunning publishes whether the run loop is still advancing.
func (s *Server) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

// Seed installs the baseline history (the step-0 snapshot) before the run
// starts.
func (s *Server) Seed(hist engine.History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(engine.History(nil), hist...)
}

// Start registers routes and begins serving in a background goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/grid", s.handleGrid)
	mux.HandleFunc("/api/v1/config", s.handleConfig)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		http.Error(w, "no snapshots yet", http.StatusServiceUnavailable)
		return
	}

	latest := s.history.Final()
	writeJSON(w, map[string]any{
		"step":           latest.Step,
		"total_steps":    s.Cfg.Steps,
		"running":        s.running,
		"employment":     latest.Employment,
		"consumption":    latest.Consumption,
		"tax_revenue":    latest.TaxRevenue,
		"ai_profit":      latest.AIProfit,
		"demand_revenue": latest.DemandRevenue,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", len(s.history))

	if offset < 0 || offset > len(s.history) {
		offset = 0
	}
	end := offset + limit
	if limit < 0 || end > len(s.history) {
		end = len(s.history)
	}

	// Strip per-worker vectors from the series response; the grid endpoint
	// serves those for the latest step only.
	out := make([]engine.Snapshot, 0, end-offset)
	for _, snap := range s.history[offset:end] {
		snap.WorkerEmployment = nil
		snap.WorkerWages = nil
		out = append(out, snap)
	}

	writeJSON(w, map[string]any{
		"total":     len(s.history),
		"offset":    offset,
		"snapshots": out,
	})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		http.Error(w, "no snapshots yet", http.StatusServiceUnavailable)
		return
	}

	latest := s.history.Final()
	if latest.WorkerEmployment == nil {
		http.Error(w, "per-worker recording disabled for this run", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"step":       latest.Step,
		"rows":       s.Cfg.GridRows,
		"cols":       s.Cfg.GridCols,
		"employment": latest.WorkerEmployment,
		"wages":      latest.WorkerWages,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Cfg)
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
