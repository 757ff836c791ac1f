// Package memos provides a small client for forwarding day summaries to a
// Memos instance (https://usememos.com).
package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Client posts memos to a configured Memos API endpoint on behalf of users.
// Each call carries the user's own access token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Memos client. An empty baseURL produces a client whose
// Enabled method reports false; callers should check it before forwarding.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether a Memos endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// memoRequest is the Memos create-memo payload.
type memoRequest struct {
	State      string `json:"state"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	Pinned     bool   `json:"pinned"`
}

// CreateMemo posts content as a new memo using the given access token.
func (c *Client) CreateMemo(ctx context.Context, token, content string) error {
	payload := memoRequest{
		State:      "NORMAL",
		Content:    content,
		Visibility: "PUBLIC",
		Pinned:     false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal memo: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post memo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Memos rejected memo", "status", resp.StatusCode)
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
