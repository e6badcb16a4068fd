package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/db"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/parquetio"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/report"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/session"
)

// requireSession exits with AuthError unless a valid session is saved. The
// gate is skipped when no password hash is configured.
func requireSession(log zerolog.Logger) {
	gate := session.Gate{PasswordHash: cfg.PasswordHash, TTL: cfg.SessionTTL}
	if !gate.Enabled() {
		log.Warn().Msg("no password_hash configured, session gate disabled")
		return
	}
	s, err := session.Load(cfg.SessionFile)
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		log.Error().Err(err).Msg("failed to read session")
		os.Exit(exitcode.AuthError)
	}
	if !session.IsSessionValid(s, time.Now()) {
		log.Error().Msg("not logged in or session expired, run `revsplit login`")
		os.Exit(exitcode.AuthError)
	}
}

// openPool connects to the database or exits with DBConnError.
func openPool(ctx context.Context, log zerolog.Logger, bulk bool) *pgxpool.Pool {
	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	pool, err := db.NewPool(ctx, cfg.DSN, bulk)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	return pool
}

// parseDay parses a --date style flag, defaulting to today in the reporting timezone.
func parseDay(log zerolog.Logger, flag, value string) time.Time {
	if value == "" {
		return time.Now().In(cfg.Location())
	}
	day, err := normalize.ParseDay(value, cfg.Location())
	if err != nil {
		log.Error().Err(err).Str("flag", flag).Msg("invalid date")
		os.Exit(exitcode.UsageError)
	}
	return day
}

// reportOptions builds the options shared by every report view.
func reportOptions() report.Options {
	return report.Options{
		Location: cfg.Location(),
		Policy:   cfg.Policy(),
	}
}

// exitReport logs a report failure and exits with the code for its phase.
func exitReport(log zerolog.Logger, err error) {
	var pe *report.PhaseError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("report failed")
		if pe.Phase == report.PhaseDoctors && errors.Is(pe.Err, report.ErrDoctorNotFound) {
			os.Exit(exitcode.ValidationError)
		}
		os.Exit(exitcode.ReportError)
	}
	log.Error().Err(err).Msg("report failed")
	os.Exit(exitcode.UsageError)
}

func renderer() report.Renderer {
	return report.Renderer{W: os.Stdout, Money: cfg.Money()}
}

// exportPass writes the pass summaries to cfg.ExportPath when set.
func exportPass(log zerolog.Logger, p *report.Pass) {
	if cfg.ExportPath == "" {
		return
	}
	rows := report.ExportRows(p)
	if err := parquetio.WriteFile(cfg.ExportPath, rows); err != nil {
		log.Error().Err(err).Str("path", cfg.ExportPath).Msg("export failed")
		os.Exit(exitcode.ReportError)
	}
	log.Info().Str("path", cfg.ExportPath).Int("rows", len(rows)).Msg("summary exported")
}
