package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestIsSessionValid(t *testing.T) {
	issued := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	s := &Session{ID: uuid.New(), IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}

	tests := []struct {
		name string
		s    *Session
		now  time.Time
		want bool
	}{
		{"nil", nil, issued, false},
		{"zero id", &Session{IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}, issued, false},
		{"at issue", s, issued, true},
		{"inside", s, issued.Add(59 * time.Minute), true},
		{"at expiry", s, issued.Add(time.Hour), false},
		{"before issue", s, issued.Add(-time.Second), false},
	}
	for _, tt := range tests {
		if got := IsSessionValid(tt.s, tt.now); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGate_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	g := Gate{PasswordHash: string(hash), TTL: 2 * time.Hour}
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	s, err := g.Login("s3cret", now)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !IsSessionValid(s, now.Add(time.Hour)) || IsSessionValid(s, now.Add(2*time.Hour)) {
		t.Errorf("session window wrong: %+v", s)
	}

	if _, err := g.Login("wrong", now); !errors.Is(err, ErrBadPassword) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := (Gate{}).Login("s3cret", now); err == nil {
		t.Error("expected error when gate has no hash")
	}
}

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	if _, err := Load(path); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load before save: err = %v", err)
	}

	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	s := &Session{ID: uuid.New(), IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != s.ID || !got.ExpiresAt.Equal(s.ExpiresAt) {
		t.Errorf("loaded %+v, want %+v", got, s)
	}

	if err := Clear(path); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}
