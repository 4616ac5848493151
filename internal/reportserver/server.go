package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"quizdoc/internal/results"
)

// Config captures the settings for serving a DuckDB attempt ledger.
type Config struct {
	Addr   string
	DBPath string
}

// Serve starts an HTTP server for the ledger at cfg.DBPath and blocks until
// ctx is cancelled or the listener fails.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	if cfg.DBPath == "" {
		return errors.New("reportserver: db path is required")
	}
	db, err := results.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	handler, err := NewHandler(db)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
