package application

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

const (
	auditTimeout = 2 * time.Second
	// Observers run before the response is written, so the alert shares the visitor's wait.
	alertTimeout = 2 * time.Second
)

// AuditObserver writes a ContactEvent for every submission.
type AuditObserver struct {
	repo   EventRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuditObserver(repo EventRepository, logger zerolog.Logger) *AuditObserver {
	return &AuditObserver{
		repo:   repo,
		logger: logger.With().Str("component", "contact_audit").Logger(),
		now:    time.Now,
	}
}

func (o *AuditObserver) ObserveOutcome(ctx context.Context, outcome domain.Outcome) {
	if o.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, auditTimeout)
	defer cancel()

	if err := o.repo.Insert(ctx, domain.NewContactEvent(outcome, o.now())); err != nil {
		o.logger.Error().Err(err).Msg("failed to store contact event")
	}
}

// FailureAlerter tells the operator when a verified visitor could not be delivered.
// The alert carries no visitor content.
type FailureAlerter struct {
	notifier Notifier
	logger   zerolog.Logger
	timeout  time.Duration
}

func NewFailureAlerter(notifier Notifier, logger zerolog.Logger) *FailureAlerter {
	return &FailureAlerter{
		notifier: notifier,
		logger:   logger.With().Str("component", "contact_alert").Logger(),
		timeout:  alertTimeout,
	}
}

func (a *FailureAlerter) ObserveOutcome(ctx context.Context, outcome domain.Outcome) {
	if a.notifier == nil || outcome.Result.Status != http.StatusInternalServerError {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.notifier.Notify(ctx, buildFailureAlert(outcome)); err != nil {
		a.logger.Error().Err(err).Msg("failed to send operator alert")
	}
}

func buildFailureAlert(outcome domain.Outcome) string {
	var builder strings.Builder
	builder.WriteString("**Contact form delivery failed**\n")
	builder.WriteString(fmt.Sprintf("- stage: %s\n", outcome.Stage))
	if cause := outcome.Cause(); cause != "" {
		builder.WriteString(fmt.Sprintf("- cause: %s\n", cause))
	}
	if ip := outcome.ClientAddr.String(); ip != "" {
		builder.WriteString(fmt.Sprintf("- client: %s\n", ip))
	}
	if outcome.Err != nil {
		builder.WriteString(fmt.Sprintf("- error: %s\n", outcome.Err.Error()))
	}
	return builder.String()
}
