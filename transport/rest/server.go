package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the game routes and returns an http.Handler.
func NewRouter(logger *slog.Logger, manager gameManager, defaults Defaults) http.Handler {
	h := NewHandlers(logger, manager, defaults)
	ping := NewPingHandler()

	r := chi.NewRouter()
	r.Get("/ping", ping.PingHandler)
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)
		r.Post("/moves", h.Place)
		r.Post("/undo", h.Undo)
		r.Post("/reset", h.Reset)
		r.Post("/stone-colors", h.ToggleShowStoneColors)
	})

	return r
}

// Start serves handler on port until ctx is canceled, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
