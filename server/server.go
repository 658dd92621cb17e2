// Package server exposes the agent over HTTP: blocking chat, SSE streaming
// and schedule triggers, plus a health endpoint. Each request carries its own
// provider credentials and builds a fresh agent, so the server itself holds
// no conversation state.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hupe1980/agentgate"
	"github.com/hupe1980/agentgate/schedule"
	"github.com/rs/zerolog"
)

// Agent is the subset of the session API the handlers need. *agentgate.Agent
// satisfies it; tests substitute their own.
type Agent interface {
	Ask(ctx context.Context, input agentgate.Input) (*agentgate.Result, error)
	Stream(ctx context.Context, input agentgate.Input) (*agentgate.Stream, error)
	TriggerSchedule(ctx context.Context, input agentgate.Input, sched schedule.Schedule) (*agentgate.Result, error)
}

// AgentFactory builds an agent from per-request config.
type AgentFactory func(cfg agentgate.Config) Agent

// ServerOptions configure the HTTP server.
type ServerOptions struct {
	Host string
	Port int

	// NewAgent overrides agent construction, mainly for tests.
	NewAgent AgentFactory

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Server is the agent HTTP server.
type Server struct {
	options        ServerOptions
	server         *http.Server
	logger         zerolog.Logger
	newAgent       AgentFactory
	startTime      time.Time
	isShuttingDown bool
	shutdownMu     sync.RWMutex
	inFlightReqs   sync.WaitGroup
}

// NewServer creates a new agent server.
func NewServer(options ServerOptions, logger zerolog.Logger) *Server {
	if options.Port == 0 {
		options.Port = 3000
	}
	if options.Host == "" {
		options.Host = "0.0.0.0"
	}
	if options.ShutdownTimeout == 0 {
		options.ShutdownTimeout = 30 * time.Second
	}

	newAgent := options.NewAgent
	if newAgent == nil {
		newAgent = func(cfg agentgate.Config) Agent { return agentgate.New(cfg) }
	}

	return &Server{
		options:   options,
		logger:    logger,
		newAgent:  newAgent,
		startTime: time.Now(),
	}
}

// Handler returns the routed HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/chat/stream", s.handleStream)
	mux.HandleFunc("/chat/schedule", s.handleSchedule)

	return s.withMiddleware(mux)
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.options.Host, s.options.Port),
		Handler: s.Handler(),
	}

	s.logger.Info().
		Str("host", s.options.Host).
		Int("port", s.options.Port).
		Msg("Starting agent server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start agent server: %w", err)
	}

	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	s.isShuttingDown = true
	s.shutdownMu.Unlock()

	s.logger.Info().Msg("Shutting down agent server")

	done := make(chan struct{})
	go func() {
		s.inFlightReqs.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("All in-flight requests completed")
	case <-time.After(s.options.ShutdownTimeout):
		s.logger.Warn().Msg("Shutdown timeout reached, forcing close")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown agent server: %w", err)
	}

	s.logger.Info().Msg("Agent server stopped")

	return nil
}

// withMiddleware wraps the mux with CORS handling, shutdown rejection and
// in-flight tracking.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		s.shutdownMu.RLock()
		if s.isShuttingDown {
			s.shutdownMu.RUnlock()
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}
		s.shutdownMu.RUnlock()

		s.inFlightReqs.Add(1)
		defer s.inFlightReqs.Done()

		next.ServeHTTP(w, r)
	})
}
