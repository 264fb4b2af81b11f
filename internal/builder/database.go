package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	pkgRetry "github.com/Jseow008/ThePlayBook-sub001/internal/pkg/retry"
	"github.com/Jseow008/ThePlayBook-sub001/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// startupRetry covers a database that is still starting next to us.
var startupRetry = pkgRetry.RetryConfig{
	Attempts: 5,
	Delay:    time.Second,
	MaxDelay: 5 * time.Second,
}

// newPoolConfig turns the database settings into a pgx pool config with the
// pgvector types registered on every connection.
func newPoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	// Configure pool settings from config
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod
	repository.RegisterVectorTypes(poolConfig)

	return poolConfig, nil
}

// SetupDatabase creates a new database connection pool
func setupDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	ping := func() error {
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("database ping failed", zap.Error(err))
			return err
		}
		return nil
	}
	if err := startupRetry.Do(ctx, ping); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
		zap.Duration("max_conn_idle_time", poolConfig.MaxConnIdleTime),
		zap.Duration("health_check_period", poolConfig.HealthCheckPeriod),
	)

	return pool, nil
}
