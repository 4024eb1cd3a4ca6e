package token

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/gatekey/internal/core"
)

// ServiceDomain identifies this service in issued tokens. It namespaces
// the private claims and doubles as issuer and audience.
const ServiceDomain = "gatekey.dev"

// Private claim keys. These are a stable wire contract; downstream
// services match on the literal strings.
const (
	APIVersionKey       = ServiceDomain + "/api-version"
	PolicyKey           = ServiceDomain + "/policy"
	UserIDKey           = ServiceDomain + "/user-id"
	IdentityProviderKey = ServiceDomain + "/identity-provider"
)

// TTL of issued tokens. Expiry is always issue time + TTL.
const TTL = time.Hour

// EncodePolicy zlib-compresses the policy content and encodes the
// result with standard base64 so it stays compact inside HTTP headers.
func EncodePolicy(content string) (string, error) {
	var buf bytes.Buffer
	enc := zlib.NewWriter(&buf)
	if _, err := enc.Write([]byte(content)); err != nil {
		return "", fmt.Errorf("compressing policy: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("flushing policy compressor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodePolicy reverses EncodePolicy exactly.
func DecodePolicy(encoded string) (string, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding policy: %w", err)
	}
	dec, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("opening policy decompressor: %w", err)
	}
	defer func() {
		_ = dec.Close()
	}()
	content, err := io.ReadAll(dec)
	if err != nil {
		return "", fmt.Errorf("decompressing policy: %w", err)
	}
	return string(content), nil
}

// BuildClaims maps an internal token to its claim set.
func BuildClaims(tok core.InternalToken, now time.Time) (jwt.MapClaims, error) {
	policy, err := EncodePolicy(tok.Policy.Content)
	if err != nil {
		return nil, err
	}

	return jwt.MapClaims{
		APIVersionKey:       tok.Version,
		PolicyKey:           policy,
		UserIDKey:           tok.UserID,
		IdentityProviderKey: tok.Provider,

		"iss": ServiceDomain,
		"aud": ServiceDomain,
		"exp": now.Add(TTL).Unix(),
	}, nil
}
