package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/nola-analytics/nola/config"
	"github.com/nola-analytics/nola/pkg/logger"
)

const (
	defaultConnectAttempts = 10
	defaultConnectDelay    = 2 * time.Second
	pingTimeout            = 5 * time.Second
)

// GetConnectionPoolSettings returns connection pool settings based on environment
func GetConnectionPoolSettings(environment string) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	// Use smaller pools for test environment to conserve connections
	if environment == "test" {
		return 10, 5, 2 * time.Minute
	}

	return 25, 25, 20 * time.Minute
}

// Connect opens the analytics database and waits for it to accept
// connections. The database container may still be starting when the API
// comes up, so the initial ping is retried with a fixed delay.
func Connect(cfg *config.DatabaseConfig, environment string, log logger.Logger) (*sql.DB, error) {
	return connectWithRetry(cfg.DSN(), environment, defaultConnectAttempts, defaultConnectDelay, log)
}

func connectWithRetry(dsn, environment string, attempts int, delay time.Duration, log logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings(environment)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		lastErr = db.PingContext(ctx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		log.WithField("attempt", attempt).WithField("error", lastErr.Error()).Warn("Database not ready, retrying")

		if attempt < attempts {
			time.Sleep(delay)
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, lastErr)
}
