package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("super-secret"), time.Hour)
	userID := "6f1f9a36-0a5c-4a4e-9c52-0d7c5f2a9e11"

	tok, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != userID {
		t.Fatalf("userID mismatch: got %q want %q", got, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService([]byte("right-secret"), time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewService([]byte("wrong-secret"), time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewService([]byte("k"), time.Hour).Verify("not.a.jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestVerify_EmptySubject(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("k"), time.Hour)

	tok, err := svc.Issue("")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty subject, got %v", err)
	}
}
