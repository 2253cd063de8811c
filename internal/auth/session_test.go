package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestSession_IssueAndParse(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)
	tok, exp, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	id, err := m.Parse(tok)
	if err != nil || id != 42 {
		t.Fatalf("parse: id=%d err=%v", id, err)
	}
}

func TestSession_WrongSecret(t *testing.T) {
	tok, _, err := NewSessionManager(testSecret, time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewSessionManager("other", time.Hour).Parse(tok); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected invalid session, got %v", err)
	}
}

func TestSession_Expired(t *testing.T) {
	m := NewSessionManager(testSecret, time.Minute)
	start := time.Now()
	m.now = func() time.Time { return start }
	tok, _, err := m.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	m.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := m.Parse(tok); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestSession_RejectsForeignClaims(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)
	// Signed with the right key but no expiry and a non-numeric subject.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"})
	tok, err := raw.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Parse(tok); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if _, err := m.Parse("not-a-token"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected rejection of garbage, got %v", err)
	}
}

func TestSession_EmptySecret(t *testing.T) {
	if _, _, err := NewSessionManager("", time.Hour).Issue(1); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
