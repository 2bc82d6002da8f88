package api

import (
	"errors"
	"testing"
	"time"
)

func TestSessionManager_IssueAndVerify(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	nick, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if nick != "alice" {
		t.Errorf("Expected nick alice, got %q", nick)
	}
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewSessionManager("secret-a", time.Hour)
	verifier := NewSessionManager("secret-b", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionManager_RejectsExpired(t *testing.T) {
	m := NewSessionManager("test-secret", -time.Minute)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}
