package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/sql"
)

const createMigrationsTable = `
CREATE SCHEMA IF NOT EXISTS hms;
CREATE TABLE IF NOT EXISTS hms.schema_migrations (
    name        text PRIMARY KEY,
    applied_at  timestamptz NOT NULL DEFAULT now()
)`

// ApplyMigrations runs the embedded SQL migrations that have not been
// recorded in hms.schema_migrations, in filename order, each in its own
// transaction. It returns how many were applied.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) (int, error) {
	entries, err := fs.ReadDir(embedsql.Migrations, "migrations")
	if err != nil {
		return 0, fmt.Errorf("read migrations dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return 0, fmt.Errorf("create migrations table: %w", err)
	}

	applied := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		var done bool
		if err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM hms.schema_migrations WHERE name = $1)", name,
		).Scan(&done); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}

		data, err := fs.ReadFile(embedsql.Migrations, "migrations/"+name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		log.Info().Str("migration", name).Msg("applying migration")
		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(data)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, "INSERT INTO hms.schema_migrations (name) VALUES ($1)", name)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("execute migration %s: %w", name, err)
		}
		applied++
	}

	log.Info().Int("applied", applied).Int("available", len(entries)).Msg("migrations up to date")
	return applied, nil
}
