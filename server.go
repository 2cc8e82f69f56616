package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 15 * time.Second

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	log.Info().Msg("Server shutdown complete")
	return nil
}
