package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"municipio.org/internal/ids"
)

const issuer = "municipio-portal"

// Tokens signs and verifies session tokens using HS256. The secret is an
// explicit constructor argument; there is no process-global state.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokensOption configures a Tokens instance.
type TokensOption func(*Tokens)

// WithClock overrides the time source, useful for tests.
func WithClock(fn func() time.Time) TokensOption {
	return func(t *Tokens) {
		if fn != nil {
			t.now = fn
		}
	}
}

// NewTokens constructs a token signer with the given secret and validity window.
func NewTokens(secret string, ttl time.Duration, opts ...TokensOption) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	t := &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// sessionClaims is the wire shape of the session token payload.
type sessionClaims struct {
	Role        string `json:"role"`
	OrgUnitID   string `json:"org_unit_id,omitempty"`
	OrgUnitName string `json:"org_unit_name,omitempty"`
	jwt.RegisteredClaims
}

// Issue embeds the identity's claims into a signed token.
func (t *Tokens) Issue(identity Identity) (string, time.Time, error) {
	if strings.TrimSpace(identity.ID) == "" {
		return "", time.Time{}, errors.New("identity id is required")
	}
	now := t.now().UTC()
	exp := now.Add(t.ttl)
	claims := sessionClaims{
		Role:        string(identity.Role),
		OrgUnitID:   identity.OrgUnitID,
		OrgUnitName: identity.OrgUnitName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        ids.New(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Decode verifies the signature and expiry of a session token. Any missing,
// malformed, tampered or expired token fails with ErrUnauthenticated.
func (t *Tokens) Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	parsed, err := parser.ParseWithClaims(raw, &sessionClaims{}, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrUnauthenticated
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrUnauthenticated
	}
	if err := t.validateClaims(claims); err != nil {
		return nil, ErrUnauthenticated
	}
	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return &Claims{
		AccountID:   claims.Subject,
		Role:        role,
		OrgUnitID:   claims.OrgUnitID,
		OrgUnitName: claims.OrgUnitName,
	}, nil
}

func (t *Tokens) validateClaims(claims *sessionClaims) error {
	if claims.Issuer != issuer {
		return fmt.Errorf("unexpected issuer: %s", claims.Issuer)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return errors.New("subject missing")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return errors.New("timestamps missing")
	}
	now := t.now().UTC()
	if now.After(claims.ExpiresAt.Time) {
		return errors.New("token expired")
	}
	// Allow a small clock skew of 5 seconds when validating issued-at.
	if claims.IssuedAt.Time.After(now.Add(5 * time.Second)) {
		return errors.New("token issued in the future")
	}
	if claims.ExpiresAt.Time.Before(claims.IssuedAt.Time) {
		return errors.New("token expiry precedes issued-at")
	}
	return nil
}
