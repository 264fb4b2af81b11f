package builder

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App owns the HTTP server and every client that must be released on exit.
type App struct {
	server  *http.Server
	db      *pgxpool.Pool
	closers []func() error
	logger  *zap.Logger
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests and releases clients.
func (a *App) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		serveErr <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		a.close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		a.logger.Error("Server error", zap.Error(err))
		return err
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal", zap.Error(context.Cause(ctx)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully", zap.Duration("timeout", shutdownTimeout))
	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.close()
	a.logger.Info("Application stopped")
	return err
}

// close releases clients in reverse order of creation, then the pool.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close client", zap.Error(err))
		}
	}
	a.closers = nil

	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
		a.db = nil
	}
}
