package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/api/presenter"
)

// handleIssueToken exchanges an upstream bearer token for a signed
// internal token. The response body is the bare token string.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	provider := r.PathValue("provider")

	external, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		logger.Warn().Str("provider", provider).Msg("rejected malformed authorization header")
		presenter.Error(w, r, "unauthorized", http.StatusUnauthorized)
		return
	}

	signed, err := s.service.IssueToken(ctx, provider, external)
	if err != nil {
		presenter.Err(w, r, err)
		return
	}

	logger.Info().
		Str("provider", provider).
		Msg("token issued successfully")

	presenter.Text(w, r, signed, http.StatusOK)
}
