// Package upload talks to the external asset host that turns raw photo
// payloads (URLs or data URIs) into durable hosted image URLs.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway accepts a raw photo payload and returns a hosted URL.
// An empty URL with a nil error means the host accepted the payload but
// produced no usable URL; callers decide how to fall back.
type Gateway interface {
	Upload(ctx context.Context, payload string) (string, error)
}

// Client uploads to a Cloudinary-style unsigned upload endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	preset     string
}

// NewClient creates an upload client for the given endpoint. The preset
// names the unsigned upload preset configured on the asset host.
func NewClient(endpoint, preset string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		preset:     preset,
	}
}

// Upload posts the payload to the asset host and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, payload string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("upload endpoint not configured")
	}

	form := url.Values{}
	form.Set("file", payload)
	if c.preset != "" {
		form.Set("upload_preset", c.preset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload rejected: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}
