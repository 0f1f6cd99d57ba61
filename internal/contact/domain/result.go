package domain

import "net/http"

// Visitor facing messages.
const (
	MessageThanks      = "Thanks for contacting me :)"
	MessageInvalid     = "Invalid Captcha"
	MessageSendFailure = "Oops! Something went wrong when sending the email"
)

// Result is the only artifact returned to the front-end for a submission.
type Result struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func ResultSent() Result {
	return Result{Status: http.StatusOK, Message: MessageThanks}
}

func ResultRejected() Result {
	return Result{Status: http.StatusForbidden, Message: MessageInvalid}
}

func ResultFailed() Result {
	return Result{Status: http.StatusInternalServerError, Message: MessageSendFailure}
}
