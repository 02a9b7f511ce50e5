package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/duskfell/RAPTR/internal/config"
	"github.com/duskfell/RAPTR/internal/logging"
	"github.com/duskfell/RAPTR/internal/search"
	"github.com/duskfell/RAPTR/internal/search/bench"
	"github.com/duskfell/RAPTR/internal/search/hho"
)

// Logger defines the logging interface used by the server, keeping the
// server decoupled from a concrete logging implementation.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// Run statuses. A run moves pending -> running -> one terminal state.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// RunState tracks one optimization job. Access is guarded by the server's
// run mutex.
type RunState struct {
	ID          string
	Function    string
	Status      string
	Err         string
	StartTime   time.Time
	EndTime     *time.Time
	Report      *search.Report
	cancel      context.CancelFunc
	LastUpdated time.Time
}

// Server exposes optimization runs over HTTP. It keeps an in-memory map
// of jobs, each executed by its own goroutine and cancellable through its
// context.
type Server struct {
	cfg    *config.Config
	logger Logger

	metrics *Metrics

	runs   map[string]*RunState
	runsMu sync.RWMutex
}

// NewServer creates a server instance with the given config, logger, and
// metrics. Metrics may be nil in tests.
func NewServer(cfg *config.Config, logger Logger, metrics *Metrics) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		runs:    make(map[string]*RunState),
	}
}

// RegisterRoutes mounts the run API onto r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/functions", s.handleFunctions)
		r.Post("/optimize", s.handleOptimize)
		r.Get("/status/{id}", s.handleStatus)
		r.Delete("/optimization/{id}", s.handleCancel)
	})
}

type optimizeRequest struct {
	Function      string    `json:"function"`
	Dim           int       `json:"dim,omitempty"`
	Lower         []float64 `json:"lower,omitempty"`
	Upper         []float64 `json:"upper,omitempty"`
	PopSize       int       `json:"pop_size,omitempty"`
	MaxIterations int       `json:"max_iterations,omitempty"`
	Seed          int64     `json:"seed,omitempty"`
	Maximize      bool      `json:"maximize,omitempty"`
}

// handleFunctions lists the benchmark objectives runs can target.
func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"functions": bench.Names(),
	})
}

// handleOptimize starts a new optimization run in the background and
// returns its ID.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	fn, ok := bench.Lookup(req.Function)
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown function %q", req.Function))
		return
	}

	bounds, err := s.requestBounds(&req, fn)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := hho.Config{
		PopSize:       s.cfg.Optimizer.PopSize,
		MaxIterations: s.cfg.Optimizer.MaxIterations,
		EvalWorkers:   s.cfg.Optimizer.EvalWorkers,
		Seed:          req.Seed,
	}
	if req.PopSize > 0 {
		cfg.PopSize = req.PopSize
	}
	if req.MaxIterations > 0 {
		cfg.MaxIterations = req.MaxIterations
	}
	if req.Maximize {
		cfg.Objective = search.Maximize{}
	}

	id := fmt.Sprintf("run_%d", time.Now().UnixNano())
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	state := &RunState{
		ID:          id,
		Function:    req.Function,
		Status:      StatusPending,
		StartTime:   now,
		cancel:      cancel,
		LastUpdated: now,
	}

	s.runsMu.Lock()
	s.runs[id] = state
	s.runsMu.Unlock()

	if s.metrics != nil {
		s.metrics.RunsStarted.Inc()
	}
	s.logger.Info("Run accepted", map[string]interface{}{
		"run_id":   id,
		"function": req.Function,
		"dim":      bounds.Dim(),
	})

	go s.runOptimization(ctx, state, hho.New(cfg), fn, bounds)

	s.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"run_id": id,
		"status": StatusPending,
	})
}

// requestBounds builds the feasible region for a run: explicit
// per-dimension limits win over the function's canonical bounds.
func (s *Server) requestBounds(req *optimizeRequest, fn *bench.Function) (*search.Bounds, error) {
	if len(req.Lower) > 0 || len(req.Upper) > 0 {
		return search.PerDimension(req.Lower, req.Upper)
	}
	dim := req.Dim
	if dim < 1 {
		dim = 2
	}
	return fn.Bounds(dim)
}

// runOptimization executes one run and records its terminal state.
func (s *Server) runOptimization(ctx context.Context, state *RunState, opt *hho.Optimizer, dec search.Decoder, bounds *search.Bounds) {
	s.setStatus(state, StatusRunning)

	report, err := opt.Optimize(ctx, dec, bounds)

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	status := StatusCompleted
	switch {
	case ctx.Err() != nil:
		status = StatusCancelled
	case err != nil:
		status = StatusFailed
		state.Err = err.Error()
		s.logger.Error("Run failed", map[string]interface{}{
			"run_id": state.ID,
			"error":  err.Error(),
		})
	default:
		state.Report = report
		s.logger.Info("Run completed", map[string]interface{}{
			"run_id":       state.ID,
			"best_fitness": report.BestFitness,
			"evals":        report.Evals,
		})
	}

	if state.Status != StatusCancelled {
		state.Status = status
	}
	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now

	if s.metrics != nil {
		s.metrics.RunsFinished.WithLabelValues(state.Status).Inc()
		if report != nil {
			s.metrics.RunDuration.Observe(report.Duration.Seconds())
		}
	}
}

func (s *Server) setStatus(state *RunState, status string) {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	if state.Status == StatusPending || state.Status == StatusRunning {
		state.Status = status
		state.LastUpdated = time.Now()
	}
}

// handleStatus reports the state of one run, including the report once it
// completed.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.RLock()
	state, exists := s.runs[id]
	if !exists {
		s.runsMu.RUnlock()
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}

	resp := map[string]interface{}{
		"run_id":      state.ID,
		"function":    state.Function,
		"status":      state.Status,
		"start_time":  state.StartTime.Format(time.RFC3339),
		"last_update": state.LastUpdated.Format(time.RFC3339),
	}
	if state.EndTime != nil {
		resp["end_time"] = state.EndTime.Format(time.RFC3339)
	}
	if state.Err != "" {
		resp["error"] = state.Err
	}
	if state.Report != nil {
		resp["report"] = state.Report
	}
	s.runsMu.RUnlock()

	s.respondJSON(w, http.StatusOK, resp)
}

// handleCancel cancels a pending or running run.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.Lock()
	state, exists := s.runs[id]
	if !exists {
		s.runsMu.Unlock()
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}

	switch state.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		status := state.Status
		s.runsMu.Unlock()
		s.respondError(w, http.StatusConflict, fmt.Sprintf("cannot cancel run with status %s", status))
		return
	}

	state.cancel()
	state.Status = StatusCancelled
	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now
	s.runsMu.Unlock()

	s.logger.Info("Run cancelled", map[string]interface{}{"run_id": id})

	s.respondJSON(w, http.StatusOK, map[string]string{
		"run_id": id,
		"status": StatusCancelled,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.logger.Warn("Request error", map[string]interface{}{
		"status":  code,
		"message": message,
	})
	s.respondJSON(w, code, map[string]string{"error": message})
}

// Close cancels every run that is still active.
func (s *Server) Close() error {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	for _, run := range s.runs {
		if run.cancel != nil {
			run.cancel()
		}
	}
	return nil
}
