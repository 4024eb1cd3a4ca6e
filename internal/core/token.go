package core

// TokenVersionV1 is the current internal claim layout. The version is an
// explicit claim so future layouts can coexist with v1 consumers.
const TokenVersionV1 = "v1"

// InternalToken is the claim payload of the signed artifact this service
// issues. Downstream services trust it instead of re-validating the
// upstream token.
type InternalToken struct {
	// Version of the claim layout, always set.
	Version string

	// Policy is the merged policy content attached to the identity.
	Policy Policy

	// UserID of the validated caller.
	UserID string

	// Provider is the name of the external identity provider that
	// validated the caller.
	Provider string
}

func NewInternalToken(policy Policy, identity ExternalIdentity) InternalToken {
	return InternalToken{
		Version:  TokenVersionV1,
		Policy:   policy,
		UserID:   identity.UserID,
		Provider: identity.Provider,
	}
}
