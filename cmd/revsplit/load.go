package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/load"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load visits from a Parquet file",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file (required)")
	f.BoolVar(&cfg.Force, "force", false, "Re-load even if the file SHA was already loaded")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	requireSession(log)

	pool := openPool(ctx, log, true)
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *load.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case load.PhasePreflight:
				os.Exit(exitcode.ValidationError)
			case load.PhaseDoctors:
				os.Exit(exitcode.ReportError)
			default:
				os.Exit(exitcode.CopyError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.CopyError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("File already loaded as load %d; use --force to re-load\n", summary.LoadID)
		return nil
	}
	fmt.Printf("Load complete: %d visits loaded, %d rejected, %d matched to a doctor (%.1fs)\n",
		summary.RowsLoaded, summary.RowsRejected, summary.DoctorsMatched, summary.DurationTotal.Seconds())
	return nil
}
