package domain

import (
	"fmt"
	"strings"
)

// AddressParseError reports that the caller address of a submission is missing or malformed.
type AddressParseError struct {
	Raw string
	Err error
}

func (e *AddressParseError) Error() string {
	if strings.TrimSpace(e.Raw) == "" {
		return fmt.Sprintf("client address unavailable: %v", e.Err)
	}
	return fmt.Sprintf("invalid client address %q: %v", e.Raw, e.Err)
}

func (e *AddressParseError) Unwrap() error { return e.Err }

// VerificationKind distinguishes why a human verification did not succeed.
type VerificationKind string

const (
	VerificationRejected    VerificationKind = "rejected"
	VerificationUnavailable VerificationKind = "unavailable"
	VerificationTimeout     VerificationKind = "timeout"
)

// VerificationError is returned by the captcha verifier for every non-success outcome.
type VerificationError struct {
	Kind  VerificationKind
	Codes []string
	Err   error
}

func (e *VerificationError) Error() string {
	var b strings.Builder
	b.WriteString("captcha verification ")
	b.WriteString(string(e.Kind))
	if len(e.Codes) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Codes, ","))
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *VerificationError) Unwrap() error { return e.Err }

// MessageBuildError reports visitor input that cannot be turned into an email.
type MessageBuildError struct {
	Field string
	Err   error
}

func (e *MessageBuildError) Error() string {
	return fmt.Sprintf("build message: %s: %v", e.Field, e.Err)
}

func (e *MessageBuildError) Unwrap() error { return e.Err }

// RelayStage names the SMTP step that failed.
type RelayStage string

const (
	RelayStageDial     RelayStage = "dial"
	RelayStageStartTLS RelayStage = "starttls"
	RelayStageAuth     RelayStage = "auth"
	RelayStageSend     RelayStage = "send"
)

// RelayError reports a failed hand-off to the mail submission host.
type RelayError struct {
	Stage RelayStage
	Err   error
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("smtp relay %s: %v", e.Stage, e.Err)
}

func (e *RelayError) Unwrap() error { return e.Err }
