// Package server provides the HTTP server implementation for the prime
// generation API. Generation requests run under the request context, so a
// disconnecting client cancels its search; the /metrics endpoint exposes
// both server-level and arithmetic-level Prometheus collectors.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/ctbig/internal/config"
	apperrors "github.com/agbru/ctbig/internal/errors"
	"github.com/agbru/ctbig/numbertheory"
)

// Timeouts groups the HTTP server timeout settings.
type Timeouts struct {
	// ReadTimeout bounds reading the request including the body.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing the response. Generous, because a prime
	// search runs inside the handler.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive connections between requests.
	IdleTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown on signal receipt.
	ShutdownTimeout time.Duration
	// GenerateTimeout bounds a single generation request.
	GenerateTimeout time.Duration
}

// DefaultServerTimeouts returns the production timeout settings.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    15 * time.Minute,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		GenerateTimeout: 10 * time.Minute,
	}
}

// Server represents the HTTP server for the prime generation API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown capabilities.
type Server struct {
	cfg            config.AppConfig
	gen            *numbertheory.Generator
	httpServer     *http.Server
	logger         zerolog.Logger
	shutdownSignal chan os.Signal
	metrics        *Metrics
	timeouts       Timeouts
	maxBits        uint
}

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
//
// Parameters:
//   - logger: The zerolog logger to use.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGenerator sets a custom generator for the server.
// This enables dependency injection for testing with deterministic entropy.
//
// Parameters:
//   - gen: The generator to use.
//
// Returns:
//   - Option: A functional option that configures the server's generator.
func WithGenerator(gen *numbertheory.Generator) Option {
	return func(s *Server) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// WithTimeouts sets custom timeout settings, used by tests to shorten the
// generation deadline.
func WithTimeouts(t Timeouts) Option {
	return func(s *Server) {
		s.timeouts = t
	}
}

// MaxRequestBits caps the candidate width a request may ask for, keeping a
// single request from monopolizing the process.
const MaxRequestBits = 8192

// NewServer creates a new Server instance with the given configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - cfg: The application configuration (port, backend, etc.).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         zerolog.New(os.Stderr).With().Timestamp().Str("component", "server").Logger(),
		shutdownSignal: make(chan os.Signal, 1),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		maxBits:        MaxRequestBits,
	}

	// Apply any provided options
	for _, opt := range opts {
		opt(s)
	}

	// Initialize generator if not provided
	if s.gen == nil {
		s.gen = &numbertheory.Generator{
			Rounds:  cfg.Rounds,
			Workers: cfg.Workers,
			Logger:  s.logger,
		}
	}

	mux := http.NewServeMux()

	// Apply middleware chain: Logging -> Metrics -> Handler
	mux.HandleFunc("/generate", s.wrapWithMiddleware(s.handleGenerate))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/backends", s.wrapWithMiddleware(s.handleBackends))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// loggingMiddleware logs each request with its method, path, and duration.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	// Channel for server startup errors
	errCh := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.logger.Info().
			Str("addr", s.httpServer.Addr).
			Str("backend", s.cfg.Backend).
			Msg("starting server")
		s.logger.Info().Msg("available endpoints: GET /generate?bits=<n>&safe=<bool>, GET /health, GET /backends, GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-s.shutdownSignal:
		s.logger.Info().Msg("shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info().Msg("server stopped gracefully")
	return nil
}

// Handler returns the server's HTTP handler, for use in httptest servers.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
