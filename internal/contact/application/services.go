package application

import (
	"context"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

// Verifier checks a captcha token against the verification service.
// A nil error means the visitor is verified; anything else should be a *domain.VerificationError.
type Verifier interface {
	Verify(ctx context.Context, token string, addr domain.ClientAddress) error
}

// Relay hands a composed message to the mail submission host.
type Relay interface {
	Send(ctx context.Context, msg domain.OutboundMessage) error
}

// OutcomeObserver is notified once per submission after the result is fixed.
// Observers cannot change the result.
type OutcomeObserver interface {
	ObserveOutcome(ctx context.Context, outcome domain.Outcome)
}

// ContactService describes the contact form use-case.
type ContactService interface {
	Submit(ctx context.Context, rawAddr string, sub domain.Submission) domain.Result
}

// EventRepository persists contact audit events.
type EventRepository interface {
	Insert(ctx context.Context, event domain.ContactEvent) error
}

// Notifier delivers short operator alerts.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
