// Package directory is the HTTP client for the external collaborator
// services: authentication, the user directory and the profile service.
// The core engines never depend on these calls succeeding; callers degrade
// to raw ids when the directory is unreachable.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the admin API. A zero token means unauthenticated; Login
// fills it in.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL (e.g.
// "http://localhost:3000/api/v1").
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// do issues a JSON request and decodes the response body into out (when
// non-nil). Error responses decode the message/error envelope fields.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
			Err     string `json:"error"`
		}
		_ = json.Unmarshal(data, &envelope)
		msg := envelope.Message
		if msg == "" {
			msg = envelope.Err
		}
		if msg == "" {
			msg = res.Status
		}
		return &APIError{Status: res.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
