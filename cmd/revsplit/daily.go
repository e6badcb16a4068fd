package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/report"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/store"
)

var dailyDate string

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Per-doctor split, expenses and net income for one day",
	RunE:  runDaily,
}

func init() {
	f := dailyCmd.Flags()
	f.StringVar(&dailyDate, "date", "", "Day to summarize, YYYY-MM-DD (default today)")
	f.StringVar(&cfg.ExportPath, "export", "", "Also write the summary to this Parquet file")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	day := parseDay(log, "date", dailyDate)
	requireSession(log)

	pool := openPool(ctx, log, false)
	defer pool.Close()

	p, err := report.Daily(ctx, store.New(pool), log, day, reportOptions())
	if err != nil {
		exitReport(log, err)
	}
	if err := renderer().Daily(p); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(exitcode.ReportError)
	}
	exportPass(log, p)
	return nil
}
