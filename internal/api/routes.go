package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/icanhazgatekey"

	IssueTokenRoute = "/token/{provider}"

	PolicyRoute = "/policy/{id}"

	IdentityRoute = "/identity/{provider}/{id}"

	AttachmentRoute       = "/attachment/{provider}/{id}"
	AttachmentPolicyRoute = "/attachment/{provider}/{id}/{policy_id}"

	AdminParent        = "/admin/"
	ListAuditsRoute    = AdminParent + "audits"
	ListProvidersRoute = AdminParent + "providers"
	ApplyProviderRoute = AdminParent + "providers/{name}"
	ListTasksRoute     = AdminParent + "tasks"
	TriggerTaskRoute   = AdminParent + "tasks/{name}/trigger"
	LogsForTaskRoute   = AdminParent + "tasks/{name}/logs"
)
