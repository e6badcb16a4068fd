package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/exitcode"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a reporting session with the shared password",
	Long:  "Reads the password from stdin (or REVSPLIT_PASSWORD) and saves a session that the report commands check.",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current reporting session",
	RunE:  runLogout,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for the password_hash config setting",
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, hashPasswordCmd)
}

// readPassword takes REVSPLIT_PASSWORD when set, otherwise the first line of stdin.
func readPassword() (string, error) {
	if p := os.Getenv("REVSPLIT_PASSWORD"); p != "" {
		return p, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	gate := session.Gate{PasswordHash: cfg.PasswordHash, TTL: cfg.SessionTTL}
	if !gate.Enabled() {
		log.Error().Msg("no password_hash configured; nothing to log in to")
		os.Exit(exitcode.UsageError)
	}

	password, err := readPassword()
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		os.Exit(exitcode.AuthError)
	}

	s, err := gate.Login(password, time.Now())
	if err != nil {
		if errors.Is(err, session.ErrBadPassword) {
			log.Error().Msg("incorrect password")
		} else {
			log.Error().Err(err).Msg("login failed")
		}
		os.Exit(exitcode.AuthError)
	}
	if err := session.Save(cfg.SessionFile, s); err != nil {
		log.Error().Err(err).Msg("failed to save session")
		os.Exit(exitcode.AuthError)
	}

	log.Info().
		Str("session", s.ID.String()).
		Time("expires_at", s.ExpiresAt).
		Msg("logged in")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	if err := session.Clear(cfg.SessionFile); err != nil {
		log.Error().Err(err).Msg("failed to clear session")
		os.Exit(exitcode.AuthError)
	}
	log.Info().Msg("logged out")
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	password, err := readPassword()
	if err != nil || password == "" {
		log.Error().Err(err).Msg("a non-empty password is required")
		os.Exit(exitcode.UsageError)
	}
	hash, err := session.HashPassword(password)
	if err != nil {
		log.Error().Err(err).Msg("hash failed")
		os.Exit(exitcode.UsageError)
	}
	fmt.Println(hash)
	return nil
}
