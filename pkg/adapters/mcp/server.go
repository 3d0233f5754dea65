package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/semaforo"
	"github.com/aretw0/semaforo/pkg/config"
	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/aretw0/semaforo/pkg/observability"
	"github.com/aretw0/semaforo/pkg/runner"
)

const (
	statesURI = "semaforo://states"
	// maxChangeUnits bounds the work of a single tool call.
	maxChangeUnits = 100_000
)

// SimulateResponse is the structured result of simulate_intersection.
type SimulateResponse struct {
	RunID       string        `json:"run_id" jsonschema_description:"Identifier of this simulation run"`
	Lines       []string      `json:"lines" jsonschema_description:"Output lines exactly as the CLI prints them"`
	Steps       []domain.Step `json:"steps" jsonschema_description:"Every displayed step with its timestamp"`
	Transitions int           `json:"transitions" jsonschema_description:"Number of forward transitions applied"`
}

// StateResponse is the structured result of validate_state.
type StateResponse struct {
	State             string   `json:"state" jsonschema_description:"Normalized 4-letter state, North South East West"`
	Valid             bool     `json:"valid" jsonschema_description:"Whether the state is part of the signal cycle"`
	NormalizationPath []string `json:"normalization_path" jsonschema_description:"States passed through while forcing an invalid state to all red"`
}

// Server exposes the simulator as MCP tools.
type Server struct {
	metrics   *observability.Metrics
	mcpServer *server.MCPServer
	now       func() time.Time
}

// NewServer creates a new MCP Server instance. metrics may be nil.
func NewServer(metrics *observability.Metrics) *Server {
	s := &Server{
		metrics:   metrics,
		mcpServer: server.NewMCPServer("semaforo-mcp", strings.TrimSpace(semaforo.Version)),
		now:       time.Now,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate_intersection",
		mcp.WithDescription("Simulate a four-way traffic signal over a time window and return every displayed state."),
		mcp.WithString("state", mcp.Description("Initial state as four letters R, Y or G in the order North South East West (default RRRR)")),
		mcp.WithNumber("red_green", mcp.Description("Seconds a red or green phase lasts (default 300)")),
		mcp.WithNumber("yellow", mcp.Description("Seconds a yellow phase lasts (default 30)")),
		mcp.WithString("window", mcp.Description("Start and end time as \"HH:MM HH:MM\" (default 09:00 09:30)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	validateTool := mcp.NewTool("validate_state",
		mcp.WithDescription("Check whether a signal state belongs to the cycle and how it would be normalized."),
		mcp.WithString("state", mcp.Required(), mcp.Description("Four letters R, Y or G in the order North South East West")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateState))
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	now := s.now()
	cfg := domain.DefaultConfig(now)
	cfg.Start, cfg.End = config.DefaultWindow(now)

	if state, ok := args["state"].(string); ok && state != "" {
		clean, err := runner.SanitizeInput(state)
		if err != nil {
			slog.Warn("MCP Simulate: Input rejected", "error", err, "size", len(state))
			return SimulateResponse{}, fmt.Errorf("input rejected: %w", err)
		}
		if cfg.Signals, err = domain.ParseSignals(clean); err != nil {
			return SimulateResponse{}, err
		}
	}
	for key, dst := range map[string]*int{"red_green": &cfg.RedGreen, "yellow": &cfg.Yellow} {
		v, ok, err := seconds(key, args[key])
		if err != nil {
			return SimulateResponse{}, err
		}
		if ok {
			*dst = v
		}
	}
	if window, ok := args["window"].(string); ok && window != "" {
		start, end, err := config.ParseWindow(window, now)
		if err != nil {
			return SimulateResponse{}, err
		}
		cfg.Start, cfg.End = start, end
	}
	if units := cfg.ChangeUnits(); units > maxChangeUnits {
		return SimulateResponse{}, fmt.Errorf("window spans %.0f signal changes, the limit is %d", units, maxChangeUnits)
	}

	var opts []semaforo.Option
	if s.metrics != nil {
		opts = append(opts, semaforo.WithLifecycleHooks(s.metrics.Hooks()))
	}
	res, err := semaforo.Simulate(ctx, cfg, opts...)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", err)
	}

	return SimulateResponse{
		RunID:       res.RunID,
		Lines:       res.Lines,
		Steps:       res.Steps,
		Transitions: res.Summary.Transitions,
	}, nil
}

func (s *Server) handleValidateState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	state, _ := args["state"].(string)
	signals, err := domain.ParseSignals(state)
	if err != nil {
		return StateResponse{}, err
	}

	path := []string{}
	for _, step := range domain.NormalizationPath(signals) {
		path = append(path, step.String())
	}
	return StateResponse{
		State:             signals.String(),
		Valid:             signals.Valid(),
		NormalizationPath: path,
	}, nil
}

// seconds reads a whole number of seconds from a JSON number argument.
// A missing argument reports ok == false.
func seconds(key string, v any) (n int, ok bool, err error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		f = x
	case int:
		f = float64(x)
	default:
		return 0, false, fmt.Errorf("%s must be a number of seconds, got %T", key, v)
	}
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, false, fmt.Errorf("%s must be a whole number of seconds between 1 and %d, got %v", key, math.MaxInt32, v)
	}
	return int(f), true, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(statesURI, "Signal cycle states",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(domain.ValidStates)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      statesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
