package validators

import (
	"context"
	"fmt"

	"github.com/darmiel/gatekey/internal/core"
)

// Static maps known token strings to user ids. Only meant for local
// development and tests; it performs no cryptographic verification.
type Static struct {
	provider string
	tokens   map[string]string // raw token -> user id
}

var _ core.IdentityValidator = (*Static)(nil)

func NewStatic(provider string, tokens map[string]string) *Static {
	if tokens == nil {
		// empty map always fails validation
		tokens = make(map[string]string)
	}
	return &Static{
		provider: provider,
		tokens:   tokens,
	}
}

func (s *Static) Validate(_ context.Context, token core.ExternalToken) (core.ExternalIdentity, error) {
	userID, ok := s.tokens[token.Raw()]
	if !ok {
		return core.ExternalIdentity{}, core.NewValidationError(core.ValidationUntrusted,
			fmt.Errorf("unknown static token"))
	}
	return core.NewExternalIdentity(userID, s.provider), nil
}
