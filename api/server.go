package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/hwpayoff/runtime/config"
	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/orchestration"
)

// Server represents the HTTP server for the payoff API.
type Server struct {
	store      *ComparisonStore
	metrics    *Metrics
	httpServer *http.Server
	handlers   *Handlers
}

// NewServer creates a new Server computing over ds with the given settings.
func NewServer(settings config.Settings, ds *config.Dataset, log logr.Logger) *Server {
	var metrics *Metrics
	if settings.MetricsEnabled {
		metrics = NewMetrics()
	}

	components := orchestration.NewComponents(ds, orchestration.FactoryOptions{
		Logger:                 log,
		DefaultInputTokenShare: contracts.Share(settings.InputTokenShare),
		OnComparison:           metrics.ObserveComparison,
	})

	store := NewComparisonStore()
	handlers := NewHandlers(components, store, metrics, HandlerOptions{
		DatasetVersion:   ds.Version,
		DailyHours:       settings.DailyHours,
		Retention:        settings.Retention,
		AuditDir:         settings.AuditDir,
		SweepParallelism: settings.SweepParallelism,
		Logger:           log,
	})

	mux := http.NewServeMux()

	// Register routes using Go 1.22+ method routing
	mux.HandleFunc("GET /healthz", handlers.HandleHealth)
	mux.HandleFunc("GET /api/v1/developers", handlers.HandleListDevelopers)
	mux.HandleFunc("GET /api/v1/developers/{id}/models", handlers.HandleListModels)
	mux.HandleFunc("GET /api/v1/hardware", handlers.HandleListHardware)
	mux.HandleFunc("GET /api/v1/training-modes", handlers.HandleListTrainingModes)
	mux.HandleFunc("POST /api/v1/comparisons", handlers.HandleCreateComparison)
	mux.HandleFunc("GET /api/v1/comparisons/{id}", handlers.HandleGetComparison)
	mux.HandleFunc("POST /api/v1/sweeps", handlers.HandleSweep)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return &Server{
		store:    store,
		metrics:  metrics,
		handlers: handlers,
		httpServer: &http.Server{
			Addr:         settings.ListenAddr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the HTTP server.
// Blocks until the server is stopped or an error occurs.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Store returns the ComparisonStore for testing purposes.
func (s *Server) Store() *ComparisonStore {
	return s.store
}
