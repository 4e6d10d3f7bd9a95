package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDatabase opens the connection pool sized from cfg and blocks
// until the instance answers a ping or cfg.DBConnectTimeout elapses.
func openDatabase(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMaxConns)

	if err := waitForDatabase(ctx, db, cfg.DBConnectTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// waitForDatabase pings with exponential backoff until the database
// responds, the timeout elapses, or ctx is cancelled. Useful when the
// API container starts before Postgres finishes accepting connections.
func waitForDatabase(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	const (
		pingTimeout = 5 * time.Second
		maxBackoff  = 2 * time.Second
	)

	backoff := 250 * time.Millisecond
	var lastErr error

	for {
		pingCtx, cancelPing := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancelPing()

		if lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", lastErr)
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
