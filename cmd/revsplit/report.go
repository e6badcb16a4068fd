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

var reportFlags struct {
	from, to string
	doctor   string
	kind     string
	search   string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Split report over a date range",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.from, "from", "", "First day, YYYY-MM-DD (default today)")
	f.StringVar(&reportFlags.to, "to", "", "Last day inclusive, YYYY-MM-DD (default --from)")
	f.StringVar(&reportFlags.doctor, "doctor", "", "Restrict to the doctor matching this name")
	f.StringVar(&reportFlags.kind, "type", "summary", "Report type: summary, category or visits")
	f.StringVar(&reportFlags.search, "search", "", "Only visits whose patient or doctor name contains this text")
	f.StringVar(&cfg.ExportPath, "export", "", "Also write the summaries to this Parquet file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	kind, err := report.ParseKind(reportFlags.kind)
	if err != nil {
		log.Error().Err(err).Msg("invalid --type")
		os.Exit(exitcode.UsageError)
	}
	from := parseDay(log, "from", reportFlags.from)
	to := from
	if reportFlags.to != "" {
		to = parseDay(log, "to", reportFlags.to)
	}
	requireSession(log)

	pool := openPool(ctx, log, false)
	defer pool.Close()

	opts := reportOptions()
	opts.Doctor = reportFlags.doctor
	opts.Search = reportFlags.search

	p, err := report.Range(ctx, store.New(pool), log, from, to, opts)
	if err != nil {
		exitReport(log, err)
	}
	if err := renderer().Report(p, kind); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(exitcode.ReportError)
	}
	exportPass(log, p)
	return nil
}
