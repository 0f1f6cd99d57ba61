package domain

import (
	"errors"
	"time"
)

// Stage is the furthest point a submission reached in the pipeline.
type Stage string

const (
	StageAddress      Stage = "address"
	StageVerification Stage = "verification"
	StageComposition  Stage = "composition"
	StageRelay        Stage = "relay"
	StageDelivered    Stage = "delivered"
)

// Outcome is the internal record of one processed submission. Result is what the visitor sees;
// Err keeps the structured cause behind it.
type Outcome struct {
	Result     Result
	Stage      Stage
	Err        error
	ClientAddr ClientAddress
	Duration   time.Duration
}

// Verified reports whether the submission passed human verification.
func (o Outcome) Verified() bool {
	return o.Stage == StageComposition || o.Stage == StageRelay || o.Stage == StageDelivered
}

// Cause returns a short label for the error kind, suitable for metrics and audit records.
func (o Outcome) Cause() string {
	if o.Err == nil {
		return ""
	}
	var addrErr *AddressParseError
	var verifyErr *VerificationError
	var buildErr *MessageBuildError
	var relayErr *RelayError
	switch {
	case errors.As(o.Err, &addrErr):
		return "address"
	case errors.As(o.Err, &verifyErr):
		return "verification_" + string(verifyErr.Kind)
	case errors.As(o.Err, &buildErr):
		return "message_" + buildErr.Field
	case errors.As(o.Err, &relayErr):
		return "relay_" + string(relayErr.Stage)
	default:
		return "unknown"
	}
}

// ContactEvent is the audit record kept for a submission. It never carries visitor content.
type ContactEvent struct {
	ID         string    `json:"id"`
	Status     int       `json:"status"`
	Stage      Stage     `json:"stage"`
	Cause      string    `json:"cause,omitempty"`
	Error      string    `json:"error,omitempty"`
	ClientIP   string    `json:"clientIp,omitempty"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewContactEvent derives the audit record from an outcome.
func NewContactEvent(o Outcome, at time.Time) ContactEvent {
	event := ContactEvent{
		Status:     o.Result.Status,
		Stage:      o.Stage,
		Cause:      o.Cause(),
		ClientIP:   o.ClientAddr.String(),
		DurationMS: o.Duration.Milliseconds(),
		CreatedAt:  at.UTC(),
	}
	if o.Err != nil {
		event.Error = o.Err.Error()
	}
	return event
}
