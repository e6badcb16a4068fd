package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a pgxpool against the hosted database and verifies it with a ping.
// Report sessions run with the server's default statement timeout; bulk
// loads pass bulk=true to disable it.
func NewPool(ctx context.Context, dsn string, bulk bool) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	if bulk {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = "0"
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "revsplit"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
