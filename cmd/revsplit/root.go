package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "revsplit",
	Short: "Hospital fee-split reporting",
	Long: "Splits visit fees between doctors and the hospital and renders daily, range " +
		"and dashboard reports from the hospital database.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.ConfigPath != "" {
			if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return nil
		}
		if err := cfg.Resolve(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("SUPABASE_DB_URL"), "Postgres connection string (or set SUPABASE_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.ConfigPath, "config", os.Getenv("REVSPLIT_CONFIG"), "Path to YAML config file")
	pf.StringVar(&cfg.ReportingTimezone, "timezone", "", "Reporting timezone, IANA name (default Asia/Karachi)")
	pf.StringVar(&cfg.CurrencySymbol, "currency", "", "Currency symbol for money output (default Rs)")
	pf.StringVar(&cfg.UnmatchedPolicy, "unmatched-policy", "", "Visits with no matching doctor: attribute_to_hospital or skip")
}
