package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/rchitlangi/cv-site/api/internal/admin/application"
	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

type fakeEventService struct {
	events []domain.ContactEvent
	err    error
	filter adminapp.ContactEventFilter
	calls  int
}

func (f *fakeEventService) List(_ context.Context, filter adminapp.ContactEventFilter) ([]domain.ContactEvent, error) {
	f.calls++
	f.filter = filter
	return f.events, f.err
}

func newRouter(svc adminapp.ContactEventService) http.Handler {
	r := chi.NewRouter()
	NewHandler(Config{Logger: zerolog.Nop(), Events: svc}).Register(r)
	return r
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestContactEventList(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeEventService{events: []domain.ContactEvent{{
		ID:         "evt-1",
		Status:     http.StatusInternalServerError,
		Stage:      domain.StageRelay,
		Cause:      "relay_auth",
		ClientIP:   "203.0.113.5",
		DurationMS: 42,
		CreatedAt:  created,
	}}}

	rec := get(newRouter(svc), "/contact-events?limit=10&status=500&since=2026-03-01T00:00:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), `"evt-1"`)
	assert.Equal(t, 10, svc.filter.Limit)
	assert.Equal(t, 500, svc.filter.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), svc.filter.Since)
}

func TestContactEventListEmpty(t *testing.T) {
	rec := get(newRouter(&fakeEventService{}), "/contact-events")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"count":0}`, rec.Body.String())
}

func TestContactEventListCapsLimit(t *testing.T) {
	svc := &fakeEventService{}
	get(newRouter(svc), "/contact-events?limit=100000")

	assert.Equal(t, 500, svc.filter.Limit)
}

func TestContactEventListBadQuery(t *testing.T) {
	for _, target := range []string{
		"/contact-events?status=abc",
		"/contact-events?status=42",
		"/contact-events?since=yesterday",
	} {
		svc := &fakeEventService{}
		rec := get(newRouter(svc), target)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Zero(t, svc.calls, target)
	}
}

func TestContactEventListServiceError(t *testing.T) {
	rec := get(newRouter(&fakeEventService{err: errors.New("mongo down")}), "/contact-events")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to load contact events"}`, rec.Body.String())
}
