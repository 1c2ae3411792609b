package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessions_IssueAndParse(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := sessions.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user id 42, got %d", userID)
	}
}

func TestSessions_ParseRejectsTamperedToken(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := sessions.Parse(tampered); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Expected ErrInvalidSession for tampered token, got %v", err)
	}
}

func TestSessions_ParseRejectsWrongSecret(t *testing.T) {
	issuer := NewSessions("issuer-secret", time.Hour)
	verifier := NewSessions("other-secret", time.Hour)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Expected ErrInvalidSession across secrets, got %v", err)
	}
}

func TestSessions_ParseRejectsExpiredToken(t *testing.T) {
	sessions := NewSessions("test-secret", -time.Minute)

	token, err := sessions.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := sessions.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Expected ErrInvalidSession for expired token, got %v", err)
	}
}

func TestSessions_ParseRejectsGarbage(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := sessions.Parse(token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Expected ErrInvalidSession for %q, got %v", token, err)
		}
	}
}
