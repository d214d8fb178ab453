package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokensRoundTrip(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	identity := Identity{
		ID:          "acct-1",
		Email:       "gestor@example.org",
		Role:        RoleManager,
		OrgUnitID:   "unit-7",
		OrgUnitName: "Secretaria de Obras",
	}
	signed, expiresAt, err := tokens.Issue(identity)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiration, got %v", expiresAt)
	}

	claims, err := tokens.Decode(signed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.AccountID != "acct-1" {
		t.Fatalf("unexpected account id: %s", claims.AccountID)
	}
	if claims.Role != RoleManager {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.OrgUnitID != "unit-7" || claims.OrgUnitName != "Secretaria de Obras" {
		t.Fatalf("org unit claims were not preserved: %+v", claims)
	}
}

func TestTokensRejectsTampering(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	signed, _, err := tokens.Issue(Identity{ID: "acct-1", Role: RoleEditor})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := tokens.Decode(tampered); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for tampered token, got %v", err)
	}
}

func TestTokensRejectsForeignSecret(t *testing.T) {
	issuerTokens, err := NewTokens(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	verifier, err := NewTokens("another-secret-another-secret-ab", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	signed, _, err := issuerTokens.Issue(Identity{ID: "acct-1", Role: RoleAdministrator})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Decode(signed); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for foreign secret, got %v", err)
	}
}

func TestTokensRejectsExpired(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	tokens, err := NewTokens(testSecret, time.Minute, WithClock(func() time.Time { return clock() }))
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	signed, _, err := tokens.Issue(Identity{ID: "acct-1", Role: RoleEditor})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := tokens.Decode(signed); err != nil {
		t.Fatalf("token should be valid before expiry: %v", err)
	}

	clock = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := tokens.Decode(signed); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after expiry, got %v", err)
	}
}

func TestTokensRejectsGarbage(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	for _, raw := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := tokens.Decode(raw); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %q, got %v", raw, err)
		}
	}
}
