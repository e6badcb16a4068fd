package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/parquetio"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats of a visit file (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to Parquet file (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	reader, err := parquetio.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open parquet file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	if err := parquetio.ValidateSchema(reader.Schema()); err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.ValidationError)
	}

	var (
		rows, rejected int64
		fees           model.Amounts
		unnamed        int64
		first, last    string
	)
	buf := make([]model.VisitRow, 256)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			rows++
			staged, err := normalize.ToStagedVisit(&buf[i], 0, rows, cfg.Location())
			if err != nil {
				rejected++
				continue
			}
			fees = fees.Add(staged.Fees)
			if staged.DoctorName == "" {
				unnamed++
			}
			day := normalize.IsoDateOnly(staged.VisitedAt, cfg.Location())
			if first == "" || day < first {
				first = day
			}
			if day > last {
				last = day
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Error().Err(readErr).Msg("failed to read rows")
			os.Exit(exitcode.ValidationError)
		}
	}

	money := cfg.Money()
	fmt.Println("=== revsplit plan ===")
	fmt.Printf("File:        %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:     %s\n", sha)
	fmt.Printf("Total rows:  %d\n", rows)
	fmt.Printf("Rejected:    %d\n", rejected)
	fmt.Printf("No doctor:   %d\n", unnamed)
	if first != "" {
		fmt.Printf("Visit dates: %s .. %s (%s)\n", first, last, cfg.Location())
	}
	fmt.Println()
	fmt.Println("Fees by category:")
	for _, c := range model.AllCategories {
		fmt.Printf("  %-10s %s\n", c, money.Format(fees[c]))
	}
	fmt.Printf("  %-10s %s\n", "TOTAL", money.Format(fees.Total()))
	fmt.Println("Schema validation: OK")

	return nil
}
