package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
)

// Defaults applied when neither flags nor the config file set a value.
const (
	DefaultTimezone   = "Asia/Karachi"
	DefaultSessionTTL = 12 * time.Hour
)

// Config holds all runtime configuration for a revsplit run.
type Config struct {
	DSN        string
	LogFormat  string // "text" or "json"
	ConfigPath string

	// Command inputs
	FilePath   string
	ExportPath string
	Force      bool

	// Reporting settings, also readable from the YAML config file
	ReportingTimezone string
	CurrencySymbol    string
	UnmatchedPolicy   string
	PasswordHash      string // bcrypt hash of the shared password; empty disables the gate
	SessionTTL        time.Duration
	SessionFile       string

	loc    *time.Location
	policy split.Policy
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	ReportingTimezone string `yaml:"reporting_timezone"`
	CurrencySymbol    string `yaml:"currency_symbol"`
	UnmatchedPolicy   string `yaml:"unmatched_doctor_policy"`
	PasswordHash      string `yaml:"password_hash"`
	SessionTTL        string `yaml:"session_ttl"`
	SessionFile       string `yaml:"session_file"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set (from flags) win over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	setIfEmpty(&c.ReportingTimezone, yc.ReportingTimezone)
	setIfEmpty(&c.CurrencySymbol, yc.CurrencySymbol)
	setIfEmpty(&c.UnmatchedPolicy, yc.UnmatchedPolicy)
	setIfEmpty(&c.PasswordHash, yc.PasswordHash)
	setIfEmpty(&c.SessionFile, yc.SessionFile)
	if c.SessionTTL == 0 && yc.SessionTTL != "" {
		ttl, err := time.ParseDuration(yc.SessionTTL)
		if err != nil {
			return fmt.Errorf("parse session_ttl: %w", err)
		}
		c.SessionTTL = ttl
	}
	return c.Resolve()
}

// Resolve fills defaults and validates the reporting settings. It must run
// before Location or Policy are used.
func (c *Config) Resolve() error {
	setIfEmpty(&c.ReportingTimezone, DefaultTimezone)
	setIfEmpty(&c.CurrencySymbol, normalize.DefaultCurrencySymbol)
	if c.SessionTTL == 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.SessionFile == "" {
		c.SessionFile = defaultSessionFile()
	}

	loc, err := time.LoadLocation(c.ReportingTimezone)
	if err != nil {
		return fmt.Errorf("reporting_timezone: %w", err)
	}
	c.loc = loc

	policy, err := split.ParsePolicy(c.UnmatchedPolicy)
	if err != nil {
		return err
	}
	c.policy = policy
	c.UnmatchedPolicy = policy.String()
	return nil
}

// Location is the single reporting timezone used for every date boundary.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Policy is the unmatched-doctor policy applied by every aggregation.
func (c *Config) Policy() split.Policy {
	return c.policy
}

// Money returns the configured money formatter.
func (c *Config) Money() normalize.MoneyFormat {
	return normalize.MoneyFormat{Symbol: c.CurrencySymbol}
}

// Validate checks fields required by commands that read a file.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateDSN checks that a database connection string is set.
func (c *Config) ValidateDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or SUPABASE_DB_URL is required")
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.ValidateDSN()
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "revsplit", "session.json")
}
