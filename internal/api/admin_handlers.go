package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/api/presenter"
	"github.com/darmiel/gatekey/internal/core"
)

// auditReader is satisfied by auditors that can list entries back, such
// as the in-memory auditor. File and noop auditors are write-only.
type auditReader interface {
	GetRecent(limit int) ([]core.AuditEntry, error)
}

// handleListAudits returns the most recent audit log entries.
func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			logger.Warn().Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	reader, ok := s.auditor.(auditReader)
	if !ok {
		presenter.Error(w, r, "configured audit sink does not support listing", http.StatusNotImplemented)
		return
	}

	entries, err := reader.GetRecent(limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}

// handleListProviders returns the names of the installed providers.
func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Providers()
	sort.Strings(names)
	presenter.JSON(w, r, names, http.StatusOK)
}

// handleApplyProvider builds and installs a validator from the posted
// settings. A bad configuration is reported to the caller; the previous
// validator for that provider, if any, stays in service.
func (s *Server) handleApplyProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	name := r.PathValue("name")

	var settings core.ProviderSettings
	if err := DecodePayload(r, &settings, false); err != nil {
		logger.Warn().Err(err).Str("provider", name).Msg("failed to decode provider settings")
		presenter.Error(w, r, "invalid provider settings", http.StatusBadRequest)
		return
	}

	if err := s.registry.Put(ctx, name, settings); err != nil {
		logger.Error().Err(err).Str("provider", name).Msg("applying provider settings failed")
		presenter.Error(w, r, "applying provider settings failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	presenter.JSON(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}
