package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/descriptor"
	"mercator-hq/stc/pkg/engine"
	"mercator-hq/stc/pkg/telemetry/health"
	"mercator-hq/stc/pkg/telemetry/logging"
	"mercator-hq/stc/pkg/telemetry/metrics"
	"mercator-hq/stc/pkg/telemetry/tracing"
)

// Resources is the read side of the descriptor registry.
type Resources interface {
	Get(id string) (*descriptor.Descriptor, error)
	List() []*descriptor.Descriptor
}

// Options carries the optional collaborators of a Server.
type Options struct {
	// Resources serves the /v1/resources routes. Nil answers them with an
	// empty listing and 404s.
	Resources Resources

	// Checker serves the probes at LivenessPath and ReadinessPath (default
	// /health and /ready). Nil uses a checker without checks.
	Checker       *health.Checker
	LivenessPath  string
	ReadinessPath string

	// Metrics records HTTP metrics and, with MetricsPath set, is served in
	// the Prometheus format.
	Metrics     *metrics.Collector
	MetricsPath string

	Tracer  *tracing.Tracer
	Logger  *logging.Logger
	Version health.VersionInfo
}

// Server is the HTTP API server.
type Server struct {
	config    config.ServerConfig
	engine    *engine.Engine
	resources Resources
	checker   *health.Checker
	probes    [2]string
	metrics   *metrics.Collector
	metricsAt string
	tracer    *tracing.Tracer
	logger    *logging.Logger
	version   health.VersionInfo

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         net.Addr
}

// New creates a server around an engine.
func New(cfg config.ServerConfig, eng *engine.Engine, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	checker := opts.Checker
	if checker == nil {
		checker = health.New(0)
	}
	probes := [2]string{opts.LivenessPath, opts.ReadinessPath}
	if probes[0] == "" {
		probes[0] = "/health"
	}
	if probes[1] == "" {
		probes[1] = "/ready"
	}
	return &Server{
		config:    cfg,
		engine:    eng,
		resources: opts.Resources,
		checker:   checker,
		probes:    probes,
		metrics:   opts.Metrics,
		metricsAt: opts.MetricsPath,
		tracer:    opts.Tracer,
		logger:    logger.With("component", "server"),
		version:   opts.Version,
	}
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("listen on %s: %w", s.config.ListenAddress, err)
	}
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.addr = ln.Addr()
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown gracefully shuts down the server, waiting at most
// ShutdownTimeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx := ctx
		if s.config.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
			defer cancel()
		}

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.routes()
	handler = s.loggingMiddleware(handler)
	handler = tracing.HTTPMiddleware(s.tracer, handler)
	handler = requestIDMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	return handler
}
