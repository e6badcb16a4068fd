package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/report"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/store"
)

var previewFlags struct {
	doctor string
	fees   [model.NumCategories]string
	shares [model.NumCategories]string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show how a new visit's fees would split, without saving it",
	RunE:  runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewFlags.doctor, "doctor", "", "Doctor name (required)")
	for _, c := range model.AllCategories {
		f.StringVar(&previewFlags.fees[c], c.Key(), "0", c.String()+" fee in major units")
		f.StringVar(&previewFlags.shares[c], c.Key()+"-share", "", "Override the doctor's "+c.String()+" percentage, e.g. 62.5")
	}
	_ = previewCmd.MarkFlagRequired("doctor")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	var fees model.Amounts
	for _, c := range model.AllCategories {
		v, err := normalize.ParseMoney(previewFlags.fees[c])
		if err != nil {
			log.Error().Err(err).Str("category", c.String()).Msg("invalid fee")
			os.Exit(exitcode.UsageError)
		}
		fees[c] = v
	}
	shares := report.ShareOverrides{}
	for _, c := range model.AllCategories {
		if previewFlags.shares[c] == "" {
			continue
		}
		bps, err := normalize.ParsePercent(previewFlags.shares[c])
		if err != nil {
			log.Error().Err(err).Str("category", c.String()).Msg("invalid share")
			os.Exit(exitcode.UsageError)
		}
		shares[c] = bps
	}
	requireSession(log)

	pool := openPool(ctx, log, false)
	defer pool.Close()

	res, err := report.Preview(ctx, store.New(pool), previewFlags.doctor, fees, cfg.Policy(), shares)
	if err != nil {
		exitReport(log, err)
	}
	if err := renderer().Preview(res); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(exitcode.ReportError)
	}
	return nil
}
