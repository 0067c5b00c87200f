package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "ada@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s vs %s", claims.UserID, userID)
	}
	if claims.Email != "ada@example.com" {
		t.Fatalf("email mismatch: %q", claims.Email)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("token type mismatch: %q", claims.TokenType)
	}
}

func TestRefreshToken_NotValidAsAccessToken(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(tok); err != nil {
		t.Fatalf("refresh token should validate as refresh: %v", err)
	}
}

func TestAccessToken_Expiry(t *testing.T) {
	svc := newTestService()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = func() time.Time { return base.Add(14 * time.Minute) }
	if _, err := svc.ValidateAccessToken(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	svc.now = func() time.Time { return base.Add(16 * time.Minute) }
	if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_RejectsGarbageAndNilSubject(t *testing.T) {
	svc := newTestService()

	if _, err := svc.ValidateAccessToken("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	tok, err := svc.GenerateAccessToken(uuid.Nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("nil user id must not validate, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewHMACService("different-access", "different-refresh", 15*time.Minute, time.Hour)

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
