// Package session implements the shared-password gate in front of the
// reports. A successful login yields an explicit Session value; callers
// check it with the pure IsSessionValid rather than reading ambient state.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrBadPassword is returned by Login for a wrong password.
	ErrBadPassword = errors.New("incorrect password")
	// ErrNoSession is returned by Load when no session has been saved.
	ErrNoSession = errors.New("not logged in")
)

// Session is a successful login with an expiry.
type Session struct {
	ID        uuid.UUID `json:"id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsSessionValid reports whether s is usable at now.
func IsSessionValid(s *Session, now time.Time) bool {
	if s == nil || s.ID == uuid.Nil {
		return false
	}
	return !now.Before(s.IssuedAt) && now.Before(s.ExpiresAt)
}

// Gate checks the shared password and issues sessions.
type Gate struct {
	PasswordHash string
	TTL          time.Duration
}

// Enabled reports whether a password is configured.
func (g Gate) Enabled() bool {
	return g.PasswordHash != ""
}

// Login verifies password and returns a session valid for g.TTL from now.
func (g Gate) Login(password string, now time.Time) (*Session, error) {
	if !g.Enabled() {
		return nil, errors.New("no password_hash configured")
	}
	err := bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrBadPassword
	}
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	return &Session{ID: uuid.New(), IssuedAt: now, ExpiresAt: now.Add(g.TTL)}, nil
}

// HashPassword returns a bcrypt hash suitable for the password_hash setting.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Save writes s to path with owner-only permissions.
func Save(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the session saved at path.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Clear removes a saved session. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
