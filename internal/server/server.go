package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HafizAhmed223/backend/internal/config"
	"github.com/HafizAhmed223/backend/pkg/logger"
)

// Server owns the HTTP surface and the lifecycle of everything behind it.
type Server struct {
	cfg    config.Config
	router *gin.Engine
}

func NewServer(cfg config.Config) *Server {
	return &Server{
		cfg: cfg,
	}
}

func (s *Server) buildRouter(components *ComponentManager) {
	s.router = NewRouter(components.Orchestrator(), components.Metrics().Registry())
}

// Run starts the components and serves HTTP until SIGINT or SIGTERM,
// then drains in-flight requests before stopping the components.
func (s *Server) Run() error {
	components := NewComponentManager(s.cfg)
	components.Start()
	defer components.Stop()

	s.buildRouter(components)

	addr := s.cfg.ListenAddr()
	logger.Info("Starting HTTP server",
		"address", fmt.Sprintf("http://%s", addr),
	)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ServerReadTimeout(),
		WriteTimeout: s.cfg.ServerWriteTimeout(),
		IdleTimeout:  s.cfg.ServerIdleTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
		logger.Debug("Received shutdown signal, initiating graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server shutdown completed successfully")
	return nil
}
