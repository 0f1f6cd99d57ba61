package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("GET", "/healthz", 200, 12*time.Millisecond)

	before := testutil.ToFloat64(contactSubmissions.WithLabelValues("500", "relay", "relay_auth"))
	ContactMetrics{}.ObserveOutcome(context.Background(), domain.Outcome{
		Result:   domain.ResultFailed(),
		Stage:    domain.StageRelay,
		Err:      &domain.RelayError{Stage: domain.RelayStageAuth, Err: errors.New("535")},
		Duration: 30 * time.Millisecond,
	})
	after := testutil.ToFloat64(contactSubmissions.WithLabelValues("500", "relay", "relay_auth"))
	assert.Equal(t, before+1, after)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "cv-site", LogConfig{Level: "warn"})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "cv-site", line["app"])

	buf.Reset()
	fallback := NewLogger(&buf, "cv-site", LogConfig{Level: "bogus"})
	fallback.Info().Msg("default level")
	assert.Contains(t, buf.String(), "default level")
}

func TestRequestLoggerUsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "cv-site", LogConfig{Level: "debug"})

	router := chi.NewRouter()
	router.Use(RequestLogger(logger))
	router.Use(RequestMetrics)
	router.Get("/files/{file}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/files/cv.pdf", nil)
	req.RemoteAddr = "203.0.113.5:4000"
	router.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/files/{file}", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.Equal(t, "203.0.113.5", line["client_ip"])
	assert.Equal(t, "warn", line["level"])
}
