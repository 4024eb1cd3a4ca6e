package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/darmiel/gatekey/internal/api"
)

// UpsertPolicy stores content under the policy id, replacing any
// previous content wholesale. The content is sent as the raw body.
func (c *Client) UpsertPolicy(ctx context.Context, id, content string) error {
	req, err := http.NewRequestWithContext(ctx, "POST", c.url().
		setPath(api.PolicyRoute).
		setPathParam("id", id).
		build(), strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	if _, err := c.do(req, nil); err != nil {
		return fmt.Errorf("storing policy: %w", err)
	}
	return nil
}

// GetPolicy returns the raw policy content.
func (c *Client) GetPolicy(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(api.PolicyRoute).
		setPathParam("id", id).
		build(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return "", parseErrorResponse(resp)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(content), nil
}

func (c *Client) DeletePolicy(ctx context.Context, id string) error {
	if _, err := c.delete(ctx, c.url().
		setPath(api.PolicyRoute).
		setPathParam("id", id).
		build()); err != nil {
		return fmt.Errorf("deleting policy: %w", err)
	}
	return nil
}
