package domain

// Form field names posted by the contact form.
const (
	FieldToken   = "g-recaptcha-response"
	FieldReplyTo = "sender_email"
	FieldMessage = "message"
)

// Submission is one visitor contact request as decoded from the form.
// Every field is untrusted.
type Submission struct {
	Token   string
	ReplyTo string
	Body    string
}
