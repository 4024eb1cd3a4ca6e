package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/api/presenter"
	"github.com/darmiel/gatekey/internal/core"
)

// maxPolicySize caps the request body of a policy upsert.
const maxPolicySize = 1 << 20

// handleUpsertPolicy stores the raw request body as the policy content.
// Content is opaque to the service; it is never parsed or evaluated.
func (s *Server) handleUpsertPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	id := r.PathValue("id")

	content, err := io.ReadAll(io.LimitReader(r.Body, maxPolicySize))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read policy body")
		presenter.Error(w, r, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.policies.Upsert(ctx, id, core.NewPolicy(id, string(content))); err != nil {
		logger.Error().Err(err).Str("policy_id", id).Msg("failed to store policy")
		presenter.Error(w, r, "failed to store policy", http.StatusInternalServerError)
		return
	}

	logger.Info().Str("policy_id", id).Msg("policy stored")
	presenter.JSON(w, r, map[string]string{"status": "ok"}, http.StatusCreated)
}

func (s *Server) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	policy, err := s.policies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			presenter.Error(w, r, "policy not found", http.StatusNotFound)
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("policy_id", id).Msg("failed to read policy")
		presenter.Error(w, r, "failed to read policy", http.StatusInternalServerError)
		return
	}

	presenter.Text(w, r, policy.Content, http.StatusOK)
}

func (s *Server) handleDeletePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := s.policies.Delete(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("policy_id", id).Msg("failed to delete policy")
		presenter.Error(w, r, "failed to delete policy", http.StatusInternalServerError)
		return
	}

	log.Ctx(ctx).Info().Str("policy_id", id).Msg("policy deleted")
	w.WriteHeader(http.StatusNoContent)
}
