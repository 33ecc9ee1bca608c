package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mecodix/dontsee/internal/logger"
	"github.com/mecodix/dontsee/pkg/config"
	"github.com/mecodix/dontsee/pkg/worker"
)

// Server is the HTTP front of the codec worker.
type Server struct {
	server *http.Server
	cfg    config.ServerConfig
}

// NewServer creates a configured but not yet started server.
func NewServer(cfg config.ServerConfig, w *worker.Worker) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      NewRouter(w, cfg),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		cfg: cfg,
	}
}

// Start serves until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "port", s.cfg.Port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("API server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown: %w", err)
	}
	return nil
}
