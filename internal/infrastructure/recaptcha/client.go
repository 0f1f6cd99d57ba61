// Package recaptcha verifies visitor tokens against the reCAPTCHA siteverify API.
package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

// DefaultVerifyURL is Google's siteverify endpoint.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

const (
	defaultTimeout  = 5 * time.Second
	maxResponseBody = 1 << 16
)

// Client verifies tokens with a single request per call. It never retries.
type Client struct {
	endpoint   string
	secret     string
	timeout    time.Duration
	httpClient *http.Client
}

// Config defines the dependencies of Client.
type Config struct {
	Endpoint   string
	Secret     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type siteverifyResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// New constructs a verification client.
func New(cfg Config) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultVerifyURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint:   endpoint,
		secret:     cfg.Secret,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// Verify returns nil when the service accepts token for addr, otherwise a *domain.VerificationError.
func (c *Client) Verify(ctx context.Context, token string, addr domain.ClientAddress) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return &domain.VerificationError{Kind: domain.VerificationRejected, Codes: []string{"missing-input-response"}}
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if addr.IsValid() {
		form.Set("remoteip", addr.String())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &domain.VerificationError{Kind: domain.VerificationUnavailable, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &domain.VerificationError{
			Kind: domain.VerificationUnavailable,
			Err:  fmt.Errorf("status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBody)).Decode(&payload); err != nil {
		if isTimeout(ctx, err) {
			return &domain.VerificationError{Kind: domain.VerificationTimeout, Err: err}
		}
		return &domain.VerificationError{Kind: domain.VerificationUnavailable, Err: fmt.Errorf("decode response: %w", err)}
	}

	if !payload.Success {
		return &domain.VerificationError{Kind: domain.VerificationRejected, Codes: payload.ErrorCodes}
	}
	return nil
}

func transportError(ctx context.Context, err error) error {
	if isTimeout(ctx, err) {
		return &domain.VerificationError{Kind: domain.VerificationTimeout, Err: err}
	}
	return &domain.VerificationError{Kind: domain.VerificationUnavailable, Err: err}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
