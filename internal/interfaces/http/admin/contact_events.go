package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	adminapp "github.com/rchitlangi/cv-site/api/internal/admin/application"
	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
	"github.com/rchitlangi/cv-site/api/internal/interfaces/http/common"
)

type contactEventListResponse struct {
	Items []domain.ContactEvent `json:"items"`
	Count int                   `json:"count"`
}

func (h *Handler) contactEventListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseContactEventFilter(r)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		events, err := h.events.List(ctx, filter)
		if err != nil {
			h.logger.Error().Err(err).Msg("contact event list fetch failed")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load contact events")
			return
		}

		if events == nil {
			events = []domain.ContactEvent{}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, contactEventListResponse{Items: events, Count: len(events)})
	}
}

var (
	errInvalidStatus = errors.New("status must be an HTTP status code")
	errInvalidSince  = errors.New("since must be an RFC 3339 timestamp")
)

func parseContactEventFilter(r *http.Request) (adminapp.ContactEventFilter, error) {
	query := r.URL.Query()
	limit, _ := common.ParsePositiveInt(query.Get("limit"), 0)
	if limit > common.MaxEventListLimit {
		limit = common.MaxEventListLimit
	}
	filter := adminapp.ContactEventFilter{Limit: limit}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil || status < 100 || status > 599 {
			return adminapp.ContactEventFilter{}, errInvalidStatus
		}
		filter.Status = status
	}

	if raw := strings.TrimSpace(query.Get("since")); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return adminapp.ContactEventFilter{}, errInvalidSince
		}
		filter.Since = since
	}
	return filter, nil
}
