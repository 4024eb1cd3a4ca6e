package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/api/presenter"
	"github.com/darmiel/gatekey/internal/core"
)

func (s *Server) handleUpsertIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	if err := s.identities.Upsert(ctx, identity, identity); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to store identity")
		presenter.Error(w, r, "failed to store identity", http.StatusInternalServerError)
		return
	}

	log.Ctx(ctx).Info().
		Str("user_id", identity.UserID).
		Str("provider", identity.Provider).
		Msg("identity registered")
	presenter.JSON(w, r, identity, http.StatusCreated)
}

func (s *Server) handleGetIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	identity, err := s.identities.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			presenter.Error(w, r, "identity not found", http.StatusNotFound)
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to read identity")
		presenter.Error(w, r, "failed to read identity", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, identity, http.StatusOK)
}

func (s *Server) handleDeleteIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := core.NewExternalIdentity(r.PathValue("id"), r.PathValue("provider"))
	if err := s.identities.Delete(ctx, key); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete identity")
		presenter.Error(w, r, "failed to delete identity", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
