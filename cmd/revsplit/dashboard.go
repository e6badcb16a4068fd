package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/report"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/store"
)

var dashboardFlags struct {
	from, to string
	top      int
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Revenue dashboard: totals, daily series, top doctors and expenses",
	RunE:  runDashboard,
}

func init() {
	f := dashboardCmd.Flags()
	f.StringVar(&dashboardFlags.from, "from", "", "First day, YYYY-MM-DD (default 30 days before --to)")
	f.StringVar(&dashboardFlags.to, "to", "", "Last day inclusive, YYYY-MM-DD (default today)")
	f.IntVar(&dashboardFlags.top, "top", 5, "Number of top doctors to list")
	f.StringVar(&cfg.ExportPath, "export", "", "Also write the summaries to this Parquet file")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	to := parseDay(log, "to", dashboardFlags.to)
	from := to.AddDate(0, 0, -29)
	if dashboardFlags.from != "" {
		from = parseDay(log, "from", dashboardFlags.from)
	}
	requireSession(log)

	pool := openPool(ctx, log, false)
	defer pool.Close()

	start := time.Now()
	p, err := report.Range(ctx, store.New(pool), log, from, to, reportOptions())
	if err != nil {
		exitReport(log, err)
	}
	d := report.BuildDashboard(p, dashboardFlags.top)
	log.Debug().Dur("duration", time.Since(start)).Int("days", len(d.Series)).Msg("dashboard built")

	if err := renderer().Dashboard(d); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(exitcode.ReportError)
	}
	exportPass(log, p)
	return nil
}
