// Package waitlistapi is an HTTP client for the waitlist JSON API. It lets a
// submission.Controller run outside the server, e.g. from the CLI.
package waitlistapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"landingwaitlist/internal/domain"
)

// Client posts signups to a running waitlist server.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a Client for baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

type joinRequest struct {
	Email string `json:"email"`
}

type apiError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AddToWaitlist implements submission.Persister. A 409 response is reported as domain.ErrDuplicateEmail.
func (c *Client) AddToWaitlist(ctx context.Context, email string) error {
	body, err := json.Marshal(joinRequest{Email: email})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/waitlist", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach waitlist api: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("waitlist api: %w", domain.ErrDuplicateEmail)
	}

	var envelope apiError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&envelope); err == nil && envelope.Error != nil {
		return fmt.Errorf("waitlist api returned status %d: %s", resp.StatusCode, envelope.Error.Message)
	}
	return fmt.Errorf("waitlist api returned status: %d", resp.StatusCode)
}
