package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/darmiel/gatekey/internal/api"
)

// IssueToken exchanges an upstream bearer token for a signed internal
// token. The upstream token overrides any configured auth token for
// this one request; the returned string is the bare signed token.
func (c *Client) IssueToken(ctx context.Context, provider, externalToken string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(api.IssueTokenRoute).
		setPathParam("provider", provider).
		build(), nil)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+externalToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return "", correlationFromResponse(resp), parseErrorResponse(resp)
	}

	signed, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", correlationFromResponse(resp), fmt.Errorf("reading response: %w", err)
	}

	return string(signed), correlationFromResponse(resp), nil
}
