package application

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

// Pipeline runs a contact submission end to end: address, verification, composition, relay.
// It holds only read-only configuration and is safe for concurrent use.
type Pipeline struct {
	verifier  Verifier
	relay     Relay
	sender    domain.Sender
	observers []OutcomeObserver
	logger    zerolog.Logger
	now       func() time.Time
}

// PipelineConfig defines the dependencies of Pipeline.
type PipelineConfig struct {
	Verifier  Verifier
	Relay     Relay
	Sender    domain.Sender
	Observers []OutcomeObserver
	Logger    zerolog.Logger
}

// NewPipeline constructs the contact submission pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		verifier:  cfg.Verifier,
		relay:     cfg.Relay,
		sender:    cfg.Sender,
		observers: append([]OutcomeObserver(nil), cfg.Observers...),
		logger:    cfg.Logger.With().Str("component", "contact_pipeline").Logger(),
		now:       time.Now,
	}
}

// Submit processes one submission and always returns one of the three visitor results.
func (p *Pipeline) Submit(ctx context.Context, rawAddr string, sub domain.Submission) domain.Result {
	started := p.now()
	outcome := p.run(ctx, rawAddr, sub)
	outcome.Duration = p.now().Sub(started)

	p.log(outcome)
	for _, observer := range p.observers {
		observer.ObserveOutcome(ctx, outcome)
	}
	return outcome.Result
}

func (p *Pipeline) run(ctx context.Context, rawAddr string, sub domain.Submission) domain.Outcome {
	addr, err := domain.ParseClientAddress(rawAddr)
	if err != nil {
		// The verification service needs the caller address; without it the visitor is denied.
		return domain.Outcome{Result: domain.ResultRejected(), Stage: domain.StageAddress, Err: err}
	}

	if err := p.verifier.Verify(ctx, sub.Token, addr); err != nil {
		return domain.Outcome{Result: verificationResult(err), Stage: domain.StageVerification, Err: err, ClientAddr: addr}
	}

	msg, err := domain.ComposeMessage(p.sender, sub)
	if err != nil {
		return domain.Outcome{Result: domain.ResultFailed(), Stage: domain.StageComposition, Err: err, ClientAddr: addr}
	}

	if err := p.relay.Send(ctx, msg); err != nil {
		return domain.Outcome{Result: domain.ResultFailed(), Stage: domain.StageRelay, Err: err, ClientAddr: addr}
	}

	return domain.Outcome{Result: domain.ResultSent(), Stage: domain.StageDelivered, ClientAddr: addr}
}

// verificationResult maps a failed verification to the visitor result. A timed out
// verification is an infrastructure failure, not a rejected visitor.
func verificationResult(err error) domain.Result {
	var verifyErr *domain.VerificationError
	if errors.As(err, &verifyErr) && verifyErr.Kind == domain.VerificationTimeout {
		return domain.ResultFailed()
	}
	return domain.ResultRejected()
}

func (p *Pipeline) log(outcome domain.Outcome) {
	event := p.logger.Info()
	switch {
	case outcome.Result.Status >= 500:
		event = p.logger.Error()
	case outcome.Err != nil:
		event = p.logger.Warn()
	}

	event.
		Int("status", outcome.Result.Status).
		Str("stage", string(outcome.Stage)).
		Str("client_ip", outcome.ClientAddr.String()).
		Dur("duration", outcome.Duration)
	if outcome.Err != nil {
		event.Str("cause", outcome.Cause()).Err(outcome.Err)
	}
	event.Msg("contact submission processed")
}
