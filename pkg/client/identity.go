package client

import (
	"context"
	"fmt"

	"github.com/darmiel/gatekey/internal/api"
	"github.com/darmiel/gatekey/internal/core"
)

// RegisterIdentity registers a known identity. The server lower-cases
// both parts, so the returned identity may differ from the input.
func (c *Client) RegisterIdentity(ctx context.Context, provider, userID string) (*core.ExternalIdentity, error) {
	var identity core.ExternalIdentity
	if _, err := c.post(ctx, c.url().
		setPath(api.IdentityRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		build(), nil, &identity); err != nil {
		return nil, fmt.Errorf("registering identity: %w", err)
	}
	return &identity, nil
}

func (c *Client) GetIdentity(ctx context.Context, provider, userID string) (*core.ExternalIdentity, error) {
	var identity core.ExternalIdentity
	if _, err := c.get(ctx, c.url().
		setPath(api.IdentityRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		build(), &identity); err != nil {
		return nil, fmt.Errorf("fetching identity: %w", err)
	}
	return &identity, nil
}

func (c *Client) DeleteIdentity(ctx context.Context, provider, userID string) error {
	if _, err := c.delete(ctx, c.url().
		setPath(api.IdentityRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		build()); err != nil {
		return fmt.Errorf("deleting identity: %w", err)
	}
	return nil
}
