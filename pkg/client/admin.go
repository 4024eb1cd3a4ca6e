package client

import (
	"context"
	"fmt"

	"github.com/darmiel/gatekey/internal/api"
	"github.com/darmiel/gatekey/internal/core"
)

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
func (c *Client) ListAudits(ctx context.Context, limit uint) ([]core.AuditEntry, error) {
	var resp []core.AuditEntry
	_, err := c.get(ctx, c.url().
		setPath(api.ListAuditsRoute).
		addQueryParam("limit", limit).
		build(), &resp)
	return resp, err
}

// ListProviders retrieves the names of the installed identity providers.
func (c *Client) ListProviders(ctx context.Context) ([]string, error) {
	var resp []string
	_, err := c.get(ctx, c.url().
		setPath(api.ListProvidersRoute).
		build(), &resp)
	return resp, err
}

// ApplyProvider installs or replaces the validator for a provider from
// the given settings. The server keeps the previous validator when the
// new settings fail to build.
func (c *Client) ApplyProvider(ctx context.Context, name string, settings core.ProviderSettings) error {
	var result map[string]string
	if _, err := c.put(ctx, c.url().
		setPath(api.ApplyProviderRoute).
		setPathParam("name", name).
		build(), settings, &result); err != nil {
		return fmt.Errorf("applying provider settings: %w", err)
	}
	return nil
}
