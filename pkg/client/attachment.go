package client

import (
	"context"
	"fmt"

	"github.com/darmiel/gatekey/internal/api"
	"github.com/darmiel/gatekey/internal/core"
)

// AttachPolicy adds a policy id to the identity's attachment.
// Attachments are additive; existing ids are kept.
func (c *Client) AttachPolicy(ctx context.Context, provider, userID, policyID string) error {
	if _, err := c.post(ctx, c.url().
		setPath(api.AttachmentPolicyRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		setPathParam("policy_id", policyID).
		build(), nil, nil); err != nil {
		return fmt.Errorf("attaching policy: %w", err)
	}
	return nil
}

// DetachPolicy removes a single policy id from the attachment.
func (c *Client) DetachPolicy(ctx context.Context, provider, userID, policyID string) (*core.PolicyAttachment, error) {
	var attachment core.PolicyAttachment
	if _, err := c.deleteWithResult(ctx, c.url().
		setPath(api.AttachmentPolicyRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		setPathParam("policy_id", policyID).
		build(), &attachment); err != nil {
		return nil, fmt.Errorf("detaching policy: %w", err)
	}
	return &attachment, nil
}

func (c *Client) GetAttachment(ctx context.Context, provider, userID string) (*core.PolicyAttachment, error) {
	var attachment core.PolicyAttachment
	if _, err := c.get(ctx, c.url().
		setPath(api.AttachmentRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		build(), &attachment); err != nil {
		return nil, fmt.Errorf("fetching attachment: %w", err)
	}
	return &attachment, nil
}

// DeleteAttachment removes the whole attachment record.
func (c *Client) DeleteAttachment(ctx context.Context, provider, userID string) error {
	if _, err := c.delete(ctx, c.url().
		setPath(api.AttachmentRoute).
		setPathParam("provider", provider).
		setPathParam("id", userID).
		build()); err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	return nil
}
