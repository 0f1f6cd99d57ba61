package public

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
	"github.com/rchitlangi/cv-site/api/internal/interfaces/http/common"
)

const messageInvalidForm = "Invalid form submission"

func (h *Handler) contactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxContactRequestBody)
		if err := r.ParseForm(); err != nil {
			h.logger.Debug().Err(err).Msg("contact form could not be parsed")
			h.writeInvalidForm(w)
			return
		}

		sub, ok := submissionFromForm(r.PostForm)
		if !ok {
			h.writeInvalidForm(w)
			return
		}

		// An accepted submission runs to completion even if the caller disconnects.
		ctx := context.WithoutCancel(r.Context())
		result := h.contacts.Submit(ctx, r.RemoteAddr, sub)

		status := http.StatusOK
		if h.alignStatus {
			status = result.Status
		}
		common.WriteJSON(h.logger, w, status, result)
	}
}

func (h *Handler) writeInvalidForm(w http.ResponseWriter) {
	common.WriteJSON(h.logger, w, http.StatusBadRequest, domain.Result{
		Status:  http.StatusBadRequest,
		Message: messageInvalidForm,
	})
}

// submissionFromForm requires all three fields to be present. Empty values are
// accepted here and judged by the pipeline.
func submissionFromForm(form url.Values) (domain.Submission, bool) {
	fields := [...]string{domain.FieldToken, domain.FieldReplyTo, domain.FieldMessage}
	for _, key := range fields {
		if _, ok := form[key]; !ok {
			return domain.Submission{}, false
		}
	}
	return domain.Submission{
		Token:   form.Get(domain.FieldToken),
		ReplyTo: form.Get(domain.FieldReplyTo),
		Body:    form.Get(domain.FieldMessage),
	}, true
}
