package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/api/presenter"
	"github.com/darmiel/gatekey/internal/core"
)

// handleAttachPolicy adds one policy id to the identity's attachment.
// Attachments are additive; attaching an already-attached id is a no-op.
func (s *Server) handleAttachPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	policyID := r.PathValue("policy_id")

	attachment := core.NewPolicyAttachment(identity, policyID)
	if err := s.attachments.Upsert(ctx, identity, attachment); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("policy_id", policyID).Msg("failed to attach policy")
		presenter.Error(w, r, "failed to attach policy", http.StatusInternalServerError)
		return
	}

	log.Ctx(ctx).Info().
		Str("user_id", identity.UserID).
		Str("provider", identity.Provider).
		Str("policy_id", policyID).
		Msg("policy attached")
	presenter.JSON(w, r, map[string]string{"status": "ok"}, http.StatusCreated)
}

// handleDetachPolicy removes one policy id from the attachment. The
// attachment store merges on Upsert, so the reduced record has to be
// written back via delete-then-insert.
func (s *Server) handleDetachPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	identity := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	policyID := r.PathValue("policy_id")

	attachment, err := s.attachments.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			presenter.Error(w, r, "attachment not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Msg("failed to read attachment")
		presenter.Error(w, r, "failed to read attachment", http.StatusInternalServerError)
		return
	}

	reduced := attachment.Without(policyID)
	if err := s.attachments.Delete(ctx, identity); err != nil {
		logger.Error().Err(err).Msg("failed to replace attachment")
		presenter.Error(w, r, "failed to detach policy", http.StatusInternalServerError)
		return
	}
	if reduced.Len() > 0 {
		if err := s.attachments.Upsert(ctx, identity, reduced); err != nil {
			logger.Error().Err(err).Msg("failed to replace attachment")
			presenter.Error(w, r, "failed to detach policy", http.StatusInternalServerError)
			return
		}
	}

	logger.Info().
		Str("user_id", identity.UserID).
		Str("policy_id", policyID).
		Msg("policy detached")
	presenter.JSON(w, r, reduced, http.StatusOK)
}

func (s *Server) handleGetAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	attachment, err := s.attachments.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			presenter.Error(w, r, "attachment not found", http.StatusNotFound)
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to read attachment")
		presenter.Error(w, r, "failed to read attachment", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, attachment, http.StatusOK)
}

// handleDeleteAttachment removes the whole attachment record; the
// identity falls back to an empty policy on the next issuance.
func (s *Server) handleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	if err := s.attachments.Delete(ctx, identity); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete attachment")
		presenter.Error(w, r, "failed to delete attachment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
