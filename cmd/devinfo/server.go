package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SebastienMelki/devinfo/internal/device"
	"github.com/SebastienMelki/devinfo/internal/observability"
)

// ServerConfig holds inspection server timeouts.
type ServerConfig struct {
	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Server exposes snapshots and collector metrics over HTTP.
type Server struct {
	cfg    ServerConfig
	info   device.Info
	http   *http.Server
	logger *slog.Logger
}

// NewServer creates an inspection server listening on addr.
func NewServer(addr string, cfg ServerConfig, info device.Info, obs *observability.Module, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		info:   info,
		logger: logger.With("component", "inspect"),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", obs.MetricsHandler())
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      observability.HTTPMetrics(metrics, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		s.logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("inspection server stopped")
	return nil
}

// handleSnapshot returns a fresh snapshot. ?format=encoded returns the
// percent-encoded metrics string instead of JSON.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "encoded" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(s.info.Metrics()))
		return
	}

	data, err := device.MarshalSnapshot(s.info.Snapshot())
	if err != nil {
		s.logger.Error("failed to marshal snapshot", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
