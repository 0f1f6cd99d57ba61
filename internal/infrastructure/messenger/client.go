// Package messenger posts operator alerts to the messenger gateway.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 3 * time.Second

// Client sends one message per call to {endpoint}/messages.
type Client struct {
	endpoint    string
	destination string
	userID      string
	httpClient  *http.Client
}

// Config defines the gateway location and routing.
type Config struct {
	Endpoint    string
	Destination string
	// UserID identifies the sender towards the gateway.
	UserID     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userID := strings.TrimSpace(cfg.UserID)
	if userID == "" {
		userID = "cv-site"
	}
	return &Client{
		endpoint:    strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		destination: strings.TrimSpace(cfg.Destination),
		userID:      userID,
		httpClient:  httpClient,
	}
}

// Notify posts text to the configured destination.
func (c *Client) Notify(ctx context.Context, text string) error {
	if c.endpoint == "" {
		return errors.New("messenger endpoint is empty")
	}

	payload := map[string]any{
		"userId": c.userID,
		"text":   text,
	}
	if c.destination != "" {
		payload["destination"] = c.destination
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode messenger payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messenger request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger responded with error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
