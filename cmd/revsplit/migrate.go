package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/db"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	pool := openPool(ctx, log, true)
	defer pool.Close()

	n, err := db.ApplyMigrations(ctx, pool, log)
	if err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.CopyError)
	}

	log.Info().Int("applied", n).Msg("all migrations applied successfully")
	return nil
}
