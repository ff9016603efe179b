package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenProvider_IssueAndValidateAccess(t *testing.T) {
	p := NewTestTokenProvider()

	access, exp, err := p.IssueAccess("u1", "a@x.com", "student")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if access == "" {
		t.Fatal("access token empty")
	}
	if exp.Before(time.Now()) {
		t.Fatal("expires at in the past")
	}

	claims, err := p.ValidateAccess(access)
	if err != nil {
		t.Fatalf("ValidateAccess: %v", err)
	}
	if claims.Subject != "u1" || claims.Email != "a@x.com" || claims.Role != "student" {
		t.Errorf("claims: got sub=%q email=%q role=%q", claims.Subject, claims.Email, claims.Role)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("iat or exp missing from claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Errorf("token lifetime: want 15m, got %v", got)
	}
}

func TestTokenProvider_ValidateAccessMalformed(t *testing.T) {
	p := NewTestTokenProvider()
	if _, err := p.ValidateAccess("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("malformed token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateAccessExpired(t *testing.T) {
	p := NewTokenProvider([]byte("test-signing-secret-0123456789ab"), -time.Minute)
	access, _, err := p.IssueAccess("u1", "a@x.com", "student")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := p.ValidateAccess(access); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expired token: want ErrExpiredToken, got %v", err)
	}
}

func TestTokenProvider_ValidateAccessWrongSecret(t *testing.T) {
	p := NewTestTokenProvider()
	access, _, err := p.IssueAccess("u1", "a@x.com", "student")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	other := NewTokenProvider([]byte("a-different-secret-entirely-0000"), 15*time.Minute)
	if _, err := other.ValidateAccess(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateAccessTampered(t *testing.T) {
	p := NewTestTokenProvider()
	access, _, err := p.IssueAccess("u1", "a@x.com", "student")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	tampered := access[:len(access)-2] + "xx"
	if _, err := p.ValidateAccess(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: want ErrInvalidToken, got %v", err)
	}
}
