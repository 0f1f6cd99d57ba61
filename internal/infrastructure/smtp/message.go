package smtp

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

// RenderMessage encodes msg as an RFC 5322 text/plain message.
func RenderMessage(msg domain.OutboundMessage, now time.Time) ([]byte, error) {
	if msg.From == nil || msg.To == nil || msg.ReplyTo == nil {
		return nil, &domain.MessageBuildError{Field: "headers", Err: fmt.Errorf("from, to and reply-to are required")}
	}

	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{msg.From})
	h.SetAddressList("To", []*mail.Address{msg.To})
	h.SetAddressList("Reply-To", []*mail.Address{msg.ReplyTo})
	h.SetSubject(msg.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, &domain.MessageBuildError{Field: "message-id", Err: err}
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, &domain.MessageBuildError{Field: "body", Err: err}
	}
	if _, err := io.WriteString(w, normalizeNewlines(msg.Body)); err != nil {
		return nil, &domain.MessageBuildError{Field: "body", Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &domain.MessageBuildError{Field: "body", Err: err}
	}
	return buf.Bytes(), nil
}

func normalizeNewlines(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	return strings.ReplaceAll(body, "\n", "\r\n")
}
