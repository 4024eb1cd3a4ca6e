package api

import (
	"net/http"

	"github.com/darmiel/gatekey/internal/api/middleware"
	"github.com/darmiel/gatekey/internal/audit"
	"github.com/darmiel/gatekey/internal/core"
	"github.com/darmiel/gatekey/internal/registry"
	"github.com/darmiel/gatekey/internal/service"
	"github.com/darmiel/gatekey/internal/store"
	"github.com/darmiel/gatekey/internal/tasks"
	"github.com/darmiel/gatekey/internal/token"
)

type Server struct {
	registry    *registry.Registry
	policies    *store.Memory[string, core.Policy]
	identities  *store.Memory[core.ExternalIdentity, core.ExternalIdentity]
	attachments *store.Memory[core.ExternalIdentity, core.PolicyAttachment]
	auditor     core.Auditor
	taskManager *tasks.Manager
	service     *service.TokenService

	signingKey []byte
}

func NewServer(
	reg *registry.Registry,
	policies *store.Memory[string, core.Policy],
	identities *store.Memory[core.ExternalIdentity, core.ExternalIdentity],
	attachments *store.Memory[core.ExternalIdentity, core.PolicyAttachment],
	auditor core.Auditor,
	taskManager *tasks.Manager,
	signer *token.Signer,
	signingKey []byte,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}

	svc := service.NewTokenService(reg, policies, attachments, signer, auditor)

	return &Server{
		registry:    reg,
		policies:    policies,
		identities:  identities,
		attachments: attachments,
		auditor:     auditor,
		taskManager: taskManager,
		service:     svc,
		signingKey:  signingKey,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// token issuance
	mux.HandleFunc("GET "+IssueTokenRoute, s.handleIssueToken)

	// policy administration
	mux.HandleFunc("POST "+PolicyRoute, s.handleUpsertPolicy)
	mux.HandleFunc("GET "+PolicyRoute, s.handleGetPolicy)
	mux.HandleFunc("DELETE "+PolicyRoute, s.handleDeletePolicy)

	// identity administration
	mux.HandleFunc("POST "+IdentityRoute, s.handleUpsertIdentity)
	mux.HandleFunc("GET "+IdentityRoute, s.handleGetIdentity)
	mux.HandleFunc("DELETE "+IdentityRoute, s.handleDeleteIdentity)

	// attachment administration
	mux.HandleFunc("POST "+AttachmentPolicyRoute, s.handleAttachPolicy)
	mux.HandleFunc("DELETE "+AttachmentPolicyRoute, s.handleDetachPolicy)
	mux.HandleFunc("GET "+AttachmentRoute, s.handleGetAttachment)
	mux.HandleFunc("DELETE "+AttachmentRoute, s.handleDeleteAttachment)

	// admin routes, only reachable with a valid internal token
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleListAudits)
	adminMux.HandleFunc("GET "+ListProvidersRoute, s.handleListProviders)
	adminMux.HandleFunc("PUT "+ApplyProviderRoute, s.handleApplyProvider)
	adminMux.HandleFunc("GET "+ListTasksRoute, s.handleListTasks)
	adminMux.HandleFunc("POST "+TriggerTaskRoute, s.handleTriggerTask)
	adminMux.HandleFunc("GET "+LogsForTaskRoute, s.handleLogsForTask)
	mux.Handle(AdminParent, middleware.AdminAuth(s.signingKey)(adminMux))

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
