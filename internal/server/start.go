package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Start runs the background services and the HTTP server, then blocks
// until an interrupt or terminate signal triggers a graceful shutdown.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.bridge.Run(ctx)

	if err := s.bridge.Subscribe(ctx, s.subscriber); err != nil {
		slog.Error("Failed to subscribe bridge to UI command topics", "error", err)
	}

	if err := s.watcher.Start(ctx, s.Cfg.GetFormsWatch()); err != nil {
		slog.Error("Failed to start form definition watcher", "error", err)
	}

	go func() {
		if err := s.E.Start(s.Cfg.GetServerAddr()); err != nil && err != http.ErrServerClosed {
			slog.Error("Shutting down the server", "error", err)
		}
	}()

	waitForShutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()
	s.watcher.Stop()
	if err := s.E.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down HTTP server cleanly", "error", err)
	}
	s.app.Shutdown()
}
