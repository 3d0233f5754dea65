package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/semaforo"
	"github.com/aretw0/semaforo/pkg/config"
	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/aretw0/semaforo/pkg/observability"
	"github.com/aretw0/semaforo/pkg/runner"
)

const (
	maxBodySize = 64 << 10
	// maxChangeUnits bounds the work and response size of a single request.
	maxChangeUnits = 100_000
)

// SimulateRequest is the body of POST /simulate. Missing fields take the
// CLI defaults: all red, 300s, 30s and 09:00 to 09:30 today.
type SimulateRequest struct {
	State    string `json:"state,omitempty"`
	RedGreen *int   `json:"red_green,omitempty"`
	Yellow   *int   `json:"yellow,omitempty"`
	Start    string `json:"start,omitempty"` // RFC 3339 or HH:MM
	End      string `json:"end,omitempty"`   // RFC 3339 or HH:MM
}

// SimulateResponse carries every line and step of the run.
type SimulateResponse struct {
	RunID       string        `json:"run_id"`
	Lines       []string      `json:"lines"`
	Steps       []domain.Step `json:"steps"`
	Transitions int           `json:"transitions"`
}

// StateResponse describes a single signal state.
type StateResponse struct {
	State             string   `json:"state"`
	Valid             bool     `json:"valid"`
	NormalizationPath []string `json:"normalization_path"`
}

// Server runs simulations on behalf of HTTP clients.
type Server struct {
	Metrics *observability.Metrics
	Logger  *slog.Logger
	// Now anchors HH:MM times; defaults to time.Now.
	Now func() time.Time
}

// NewServer creates a server. metrics may be nil, in which case /metrics is
// not mounted.
func NewServer(metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{Metrics: metrics, Logger: logger, Now: time.Now}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.Health)
	r.Post("/simulate", s.Simulate)
	r.Get("/states/{state}", s.State)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": semaforo.Version,
	})
}

// Simulate handles POST /simulate.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Simulate: Invalid request body", "error", err)
		return
	}

	cfg, err := s.configFrom(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("Simulate: Invalid parameters", "error", err)
		return
	}

	logger := s.Logger
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	opts := []semaforo.Option{semaforo.WithLogger(logger)}
	if s.Metrics != nil {
		opts = append(opts, semaforo.WithLifecycleHooks(s.Metrics.Hooks()))
	}

	res, err := semaforo.Simulate(r.Context(), cfg, opts...)
	if err != nil {
		var verr *domain.AggregateError
		if errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Simulation error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Simulate failed", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:       res.RunID,
		Lines:       res.Lines,
		Steps:       res.Steps,
		Transitions: res.Summary.Transitions,
	})
}

// State handles GET /states/{state}.
func (s *Server) State(w http.ResponseWriter, r *http.Request) {
	signals, err := domain.ParseSignals(chi.URLParam(r, "state"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	path := []string{}
	for _, step := range domain.NormalizationPath(signals) {
		path = append(path, step.String())
	}
	writeJSON(w, http.StatusOK, StateResponse{
		State:             signals.String(),
		Valid:             signals.Valid(),
		NormalizationPath: path,
	})
}

func (s *Server) configFrom(body SimulateRequest) (domain.Config, error) {
	now := s.Now()
	cfg := domain.DefaultConfig(now)
	cfg.Start, cfg.End = config.DefaultWindow(now)

	if body.State != "" {
		clean, err := runner.SanitizeInput(body.State)
		if err != nil {
			return cfg, err
		}
		if cfg.Signals, err = domain.ParseSignals(clean); err != nil {
			return cfg, err
		}
	}
	if body.RedGreen != nil {
		cfg.RedGreen = *body.RedGreen
	}
	if body.Yellow != nil {
		cfg.Yellow = *body.Yellow
	}

	if body.Start != "" {
		start, err := config.ParseTime(body.Start, now)
		if err != nil {
			return cfg, err
		}
		cfg.Start = start
		cfg.End = start.Add(domain.DefaultWindow)
	}
	if body.End != "" {
		end, err := config.ParseTime(body.End, cfg.Start)
		if err != nil {
			return cfg, err
		}
		cfg.End = end
	}
	if units := cfg.ChangeUnits(); units > maxChangeUnits {
		return cfg, fmt.Errorf("window spans %.0f signal changes, the limit is %d: shorten the window or raise red_green", units, maxChangeUnits)
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
