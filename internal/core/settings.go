package core

import "fmt"

// ProviderSettings is the OIDC trust configuration for one external
// identity provider. All fields are required.
type ProviderSettings struct {
	// UserIDClaim names the claim that carries the user id in the
	// upstream token (e.g. "sub", "upn", "email").
	UserIDClaim string `json:"user_id_claim" mapstructure:"user_id_claim"`

	// DiscoveryURL is the OIDC issuer URL used to discover the
	// provider's published keys.
	DiscoveryURL string `json:"discovery_url" mapstructure:"discovery_url"`

	// Issuers is the allow-list of token issuers.
	Issuers []string `json:"issuers" mapstructure:"issuers"`

	// Audiences is the allow-list of token audiences.
	Audiences []string `json:"audiences" mapstructure:"audiences"`
}

func (s ProviderSettings) Validate() error {
	if s.UserIDClaim == "" {
		return fmt.Errorf("user_id_claim is required")
	}
	if s.DiscoveryURL == "" {
		return fmt.Errorf("discovery_url is required")
	}
	if len(s.Issuers) == 0 {
		return fmt.Errorf("at least one issuer is required")
	}
	if len(s.Audiences) == 0 {
		return fmt.Errorf("at least one audience is required")
	}
	return nil
}
