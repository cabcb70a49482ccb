// Package server provides the HTTP server for the distill API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/proxy/handlers"
	"brainstormer-hq/distill/pkg/proxy/middleware"
	"brainstormer-hq/distill/pkg/telemetry/health"
)

// DistillPath is the route of the distill endpoint.
const DistillPath = "/api/distill"

// BuildInfo is reported by /version.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Server is the HTTP server for the distill API.
type Server struct {
	config       *config.Config
	components   *Components
	build        BuildInfo
	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	logger       *slog.Logger
}

// NewServer creates a server from configuration and assembled components.
func NewServer(cfg *config.Config, components *Components, build BuildInfo) *Server {
	return &Server{
		config:       cfg,
		components:   components,
		build:        build,
		shutdownChan: make(chan struct{}),
		logger:       slog.Default().With("component", "server"),
	}
}

// Start starts the sweeper and HTTP server and blocks until ctx is done,
// SIGINT/SIGTERM arrives, Stop is called, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}
	s.isRunning = true
	s.mu.Unlock()

	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	defer cancelSweeper()
	if err := s.components.Sweeper.Start(sweeperCtx); err != nil {
		_ = listener.Close()
		s.markStopped()
		return fmt.Errorf("failed to start rate limit sweeper: %w", err)
	}
	s.components.Health.RegisterCheck("sweeper", health.SchedulerCheck("rate limit sweeper", s.components.Sweeper.IsRunning))

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting distill server", "address", listener.Addr().String())

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errChan:
		s.components.Sweeper.Stop()
		s.markStopped()
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
	}

	return s.Shutdown(context.Background())
}

// Stop asks a running Start to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown stops the sweeper and drains in-flight requests, bounded by
// server.shutdown_timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if !s.IsRunning() {
			return
		}

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		s.components.Sweeper.Stop()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.markStopped()
		s.logger.Info("distill server stopped")
	})

	return shutdownErr
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(DistillPath, handlers.NewDistillHandler(handlers.DistillConfig{
		Credential:    s.components.Credential,
		Limiter:       s.components.Limiter,
		Completer:     s.components.Completer,
		Metrics:       s.components.Metrics,
		Model:         s.config.Completion.Model,
		MaxBodyBytes:  s.config.Server.MaxBodyBytes,
		MaxTextLength: s.config.Distill.MaxTextLength,
	}))

	health.Register(mux, s.components.Health, s.build.Version, s.build.Commit, s.build.BuildTime)

	if s.components.Metrics != nil {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.components.Metrics.Handler())
	}

	return middleware.Chain(mux,
		middleware.RecoveryMiddleware,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(s.config.Server.CORS),
	)
}

// Addr returns the bound listen address once Start has begun listening.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Server) markStopped() {
	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()
}
