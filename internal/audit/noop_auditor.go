package audit

import "github.com/darmiel/gatekey/internal/core"

// NoopAuditor discards everything.
type NoopAuditor struct{}

var _ core.Auditor = (*NoopAuditor)(nil)

func NewNoopAuditor() *NoopAuditor {
	return &NoopAuditor{}
}

func (n *NoopAuditor) Log(_ core.AuditEntry) error {
	return nil
}

func (n *NoopAuditor) Close() error {
	return nil
}
