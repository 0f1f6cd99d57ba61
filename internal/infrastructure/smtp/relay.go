// Package smtp relays contact emails through an authenticated submission host.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

const (
	defaultSubmissionPort = "587"
	defaultTimeout        = 15 * time.Second
)

// Relay sends one message per call over a fresh STARTTLS session. Failed sends are not retried.
type Relay struct {
	addr       string
	serverName string
	username   string
	password   string
	timeout    time.Duration
	tlsConfig  *tls.Config
	dialer     *net.Dialer
	now        func() time.Time
}

// Config defines the submission host and static credentials.
type Config struct {
	Host     string
	Username string
	Password string
	Timeout  time.Duration
	// TLSConfig overrides the STARTTLS client configuration. ServerName defaults to the host.
	TLSConfig *tls.Config
}

// NewRelay constructs a relay client. A host without a port uses the submission port 587.
func NewRelay(cfg Config) *Relay {
	addr := strings.TrimSpace(cfg.Host)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = strings.Trim(addr, "[]")
		addr = net.JoinHostPort(host, defaultSubmissionPort)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Relay{
		addr:       addr,
		serverName: host,
		username:   cfg.Username,
		password:   cfg.Password,
		timeout:    timeout,
		tlsConfig:  cfg.TLSConfig,
		dialer:     &net.Dialer{},
		now:        time.Now,
	}
}

// Addr returns the host:port the relay dials.
func (r *Relay) Addr() string { return r.addr }

// Send renders msg and transmits it. Errors are *domain.RelayError or *domain.MessageBuildError.
func (r *Relay) Send(ctx context.Context, msg domain.OutboundMessage) error {
	payload, err := RenderMessage(msg, r.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.dialer.DialContext(ctx, "tcp", r.addr)
	if err != nil {
		return &domain.RelayError{Stage: domain.RelayStageDial, Err: err}
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// NewClientStartTLS greets the server and fails when STARTTLS is not advertised.
	client, err := gosmtp.NewClientStartTLS(conn, r.clientTLSConfig())
	if err != nil {
		_ = conn.Close()
		return &domain.RelayError{Stage: domain.RelayStageStartTLS, Err: err}
	}
	defer client.Close()

	if err := client.Auth(sasl.NewPlainClient("", r.username, r.password)); err != nil {
		return &domain.RelayError{Stage: domain.RelayStageAuth, Err: err}
	}
	if err := client.SendMail(msg.From.Address, []string{msg.To.Address}, bytes.NewReader(payload)); err != nil {
		return &domain.RelayError{Stage: domain.RelayStageSend, Err: err}
	}

	// DATA was accepted; a failed QUIT does not undo delivery.
	_ = client.Quit()
	return nil
}

func (r *Relay) clientTLSConfig() *tls.Config {
	if r.tlsConfig == nil {
		return &tls.Config{ServerName: r.serverName, MinVersion: tls.VersionTLS12}
	}
	cfg := r.tlsConfig.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = r.serverName
	}
	return cfg
}
