package api

import (
	"errors"
	"strings"

	"github.com/darmiel/gatekey/internal/core"
)

var errMalformedAuthHeader = errors.New("malformed authorization header")

// bearerToken extracts the credential from an Authorization header.
// The header must be exactly "Bearer" and the token, separated by a
// single space. Anything else is rejected before a validator ever
// sees the request.
func bearerToken(header string) (core.ExternalToken, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return core.ExternalToken{}, errMalformedAuthHeader
	}
	return core.NewExternalToken(parts[1]), nil
}
