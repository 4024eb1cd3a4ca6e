package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/audit"
	"github.com/darmiel/gatekey/internal/core"
	"github.com/darmiel/gatekey/internal/registry"
	"github.com/darmiel/gatekey/internal/token"
)

// Public issuance failures. The messages are what callers see; detail
// stays in the server logs so validation logic cannot be probed.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrSigningFailed = errors.New("internal server error")
)

// TokenService exchanges validated external identities for signed
// internal tokens carrying their merged policy content.
type TokenService struct {
	registry    *registry.Registry
	policies    core.Repository[string, core.Policy]
	attachments core.Repository[core.ExternalIdentity, core.PolicyAttachment]
	signer      *token.Signer
	auditor     core.Auditor
}

func NewTokenService(
	reg *registry.Registry,
	policies core.Repository[string, core.Policy],
	attachments core.Repository[core.ExternalIdentity, core.PolicyAttachment],
	signer *token.Signer,
	auditor core.Auditor,
) *TokenService {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &TokenService{
		registry:    reg,
		policies:    policies,
		attachments: attachments,
		signer:      signer,
		auditor:     auditor,
	}
}

// IssueToken validates the upstream token against the named provider
// and, on success, generates a signed internal token. Every failure on
// the validation path collapses to a generic 401.
func (s *TokenService) IssueToken(ctx context.Context, provider string, external core.ExternalToken) (string, error) {
	logger := log.Ctx(ctx)
	reqID := correlationID(ctx)

	entry := core.AuditEntry{
		ID:       reqID,
		Time:     time.Now(),
		Action:   "token.issue",
		Provider: provider,
	}
	defer func() {
		if err := s.auditor.Log(entry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for token issuance")
		}
	}()

	validator, err := s.registry.Get(provider)
	if err != nil {
		entry.Error = "unknown provider"
		logger.Warn().Str("provider", provider).Msg("token requested for unknown provider")
		return "", httpError(http.StatusUnauthorized, ErrUnauthorized)
	}

	identity, err := validator.Validate(ctx, external)
	if err != nil {
		entry.Error = "validation failed"
		// internal detail goes to the log only, never to the caller
		logger.Warn().Err(err).Str("provider", provider).Msg("upstream token validation failed")
		return "", httpError(http.StatusUnauthorized, ErrUnauthorized)
	}
	entry.UserID = identity.UserID

	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("user_id", identity.UserID)
	})

	signed, policyIDs, err := s.GenerateToken(ctx, identity)
	if err != nil {
		entry.Error = err.Error()
		return "", err
	}

	entry.Success = true
	entry.PolicyIDs = policyIDs
	entry.TokenFingerprint = audit.Fingerprint(signed)
	return signed, nil
}

// GenerateToken resolves the policies attached to identity, merges them
// in lexicographic policy-id order and signs the resulting claim set.
// An identity without an attachment is valid and yields a token with
// empty policy content; a referenced-but-missing policy fails the whole
// issuance (no partial token).
func (s *TokenService) GenerateToken(ctx context.Context, identity core.ExternalIdentity) (string, []string, error) {
	logger := log.Ctx(ctx)

	attachment, err := s.attachments.Get(ctx, identity)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		logger.Error().Err(err).Msg("reading policy attachment failed")
		return "", nil, httpError(http.StatusInternalServerError, ErrSigningFailed)
	}

	policyIDs := attachment.PolicyIDs()
	merged := core.EmptyPolicy()
	for _, id := range policyIDs {
		policy, err := s.policies.Get(ctx, id)
		if err != nil {
			logger.Error().Err(err).Str("policy_id", id).Msg("attached policy missing, refusing to issue partial token")
			return "", nil, httpError(http.StatusUnauthorized, ErrUnauthorized)
		}
		merged = merged.Merge(policy)
	}

	internal := core.NewInternalToken(merged, identity)
	signed, err := s.signer.Sign(internal, time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("signing internal token failed")
		return "", nil, httpError(http.StatusInternalServerError, ErrSigningFailed)
	}

	logger.Debug().
		Int("policies", len(policyIDs)).
		Msg("internal token generated")
	return signed, policyIDs, nil
}

func correlationID(ctx context.Context) string {
	id, _ := ctx.Value("correlation_id").(string)
	return id
}

type noopAuditor struct{}

func (noopAuditor) Log(_ core.AuditEntry) error { return nil }
func (noopAuditor) Close() error                { return nil }
