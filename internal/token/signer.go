package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/gatekey/internal/core"
)

// Signer turns internal tokens into compact signed strings using an
// HMAC-SHA-256 keyed MAC. The key is process-wide, loaded once at
// startup and shared read-only for the process lifetime.
type Signer struct {
	key []byte
}

func NewSigner(key []byte) (*Signer, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("signing key must not be empty")
	}
	return &Signer{key: key}, nil
}

// Sign encodes the internal token's claims and signs them.
func (s *Signer) Sign(tok core.InternalToken, now time.Time) (string, error) {
	claims, err := BuildClaims(tok, now)
	if err != nil {
		return "", &core.SigningError{Err: err}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", &core.SigningError{Err: err}
	}
	return signed, nil
}

// Parse verifies a token this signer produced and returns its claims.
// Used by the admin middleware and the debug tooling.
func (s *Signer) Parse(raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.key, nil
	}, jwt.WithAudience(ServiceDomain), jwt.WithIssuer(ServiceDomain))
	if err != nil {
		return nil, fmt.Errorf("parsing internal token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid internal token")
	}
	return claims, nil
}
