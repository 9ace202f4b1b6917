package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewHandler - read-only inspection API over the rendered board.
func NewHandler(logger *slog.Logger, frames frameSource) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		frames: frames,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /frame", h.frameHandler)
	mux.HandleFunc("GET /nodes/{id}", h.nodeHandler)

	return mux
}

// Start - serves the inspection API until ctx is done.
func Start(ctx context.Context, logger *slog.Logger, port string, frames frameSource) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewHandler(logger, frames),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down inspection server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
