package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/gatekey/internal/core"
)

// OIDC validates upstream tokens against one provider's published keys.
// Discovery and the JWKS fetch happen once at construction; per-request
// validation only refreshes key material when the key set rotates.
type OIDC struct {
	provider string
	settings core.ProviderSettings
	verifier *oidc.IDTokenVerifier
}

var _ core.IdentityValidator = (*OIDC)(nil)

// NewOIDC performs OIDC discovery for the provider and prepares a
// verifier. This is the network-bound step the registry runs outside
// its exclusive section.
func NewOIDC(ctx context.Context, provider string, settings core.ProviderSettings) (*OIDC, error) {
	p, err := oidc.NewProvider(ctx, settings.DiscoveryURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery for %q: %w", settings.DiscoveryURL, err)
	}

	// issuer and audience are checked against the configured
	// allow-lists below, so the verifier only covers signature,
	// structure and time-bound claims.
	verifier := p.Verifier(&oidc.Config{
		SkipClientIDCheck: true,
		SkipIssuerCheck:   true,
	})

	return &OIDC{
		provider: provider,
		settings: settings,
		verifier: verifier,
	}, nil
}

func (v *OIDC) Validate(ctx context.Context, token core.ExternalToken) (core.ExternalIdentity, error) {
	var zero core.ExternalIdentity

	// structural pre-parse so malformed input is distinguishable from
	// a trust failure; the error from the parser never echoes the token
	if _, _, err := jwt.NewParser().ParseUnverified(token.Raw(), jwt.MapClaims{}); err != nil {
		return zero, core.NewValidationError(core.ValidationMalformed,
			fmt.Errorf("token is not a structurally valid JWT"))
	}

	idToken, err := v.verifier.Verify(ctx, token.Raw())
	if err != nil {
		return zero, core.NewValidationError(core.ValidationUntrusted, err)
	}

	if !slices.Contains(v.settings.Issuers, idToken.Issuer) {
		return zero, core.NewValidationError(core.ValidationUntrusted,
			fmt.Errorf("issuer %q is not in the allow-list", idToken.Issuer))
	}

	allowed := false
	for _, aud := range idToken.Audience {
		if slices.Contains(v.settings.Audiences, aud) {
			allowed = true
			break
		}
	}
	if !allowed {
		return zero, core.NewValidationError(core.ValidationUntrusted,
			fmt.Errorf("no token audience is in the allow-list"))
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return zero, core.NewValidationError(core.ValidationMalformed,
			fmt.Errorf("extracting claims: %w", err))
	}

	userID, ok := claims[v.settings.UserIDClaim].(string)
	if !ok || userID == "" {
		return zero, core.NewValidationError(core.ValidationMissingClaim,
			fmt.Errorf("claim %q is absent or not a string", v.settings.UserIDClaim))
	}

	return core.NewExternalIdentity(userID, v.provider), nil
}
