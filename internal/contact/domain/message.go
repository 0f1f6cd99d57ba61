package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-message/mail"
)

// DefaultSubject is the fixed subject of every contact email.
const DefaultSubject = "Message from the CV website"

const maxAddressLength = 254

// Sender holds the operator side of every contact email.
type Sender struct {
	From    *mail.Address
	To      *mail.Address
	Subject string
}

// NewSender parses the operator's from/recipient addresses.
func NewSender(from, to string) (Sender, error) {
	fromAddr, err := mail.ParseAddress(strings.TrimSpace(from))
	if err != nil {
		return Sender{}, fmt.Errorf("sender address %q: %w", from, err)
	}
	toAddr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return Sender{}, fmt.Errorf("recipient address %q: %w", to, err)
	}
	return Sender{From: fromAddr, To: toAddr, Subject: DefaultSubject}, nil
}

// OutboundMessage is the email handed to the relay for one verified submission.
type OutboundMessage struct {
	From    *mail.Address
	ReplyTo *mail.Address
	To      *mail.Address
	Subject string
	Body    string
}

// ComposeMessage builds the email for a submission. The visitor's address only ever
// lands in Reply-To, and only after it parsed as a single mailbox.
func ComposeMessage(sender Sender, sub Submission) (OutboundMessage, error) {
	replyTo, err := parseReplyTo(sub.ReplyTo)
	if err != nil {
		return OutboundMessage{}, &MessageBuildError{Field: FieldReplyTo, Err: err}
	}
	if sender.From == nil || sender.To == nil {
		return OutboundMessage{}, &MessageBuildError{Field: "sender", Err: errors.New("sender is not configured")}
	}

	subject := sender.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	return OutboundMessage{
		From:    sender.From,
		ReplyTo: replyTo,
		To:      sender.To,
		Subject: subject,
		Body:    sub.Body,
	}, nil
}

func parseReplyTo(value string) (*mail.Address, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, errors.New("address is empty")
	}
	if len(trimmed) > maxAddressLength {
		return nil, fmt.Errorf("address longer than %d bytes", maxAddressLength)
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return nil, errors.New("address contains a line break")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return nil, err
	}
	return addr, nil
}
