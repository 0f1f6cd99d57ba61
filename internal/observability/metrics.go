package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvsite",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvsite",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	contactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvsite",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact submissions by result status, stage reached and failure cause.",
		},
		[]string{"status", "stage", "cause"},
	)
	contactDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvsite",
			Subsystem: "contact",
			Name:      "submission_duration_seconds",
			Help:      "End to end contact pipeline duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, contactSubmissions, contactDuration)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordContactOutcome(outcome domain.Outcome) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(outcome.Result.Status)
	contactSubmissions.WithLabelValues(statusLabel, string(outcome.Stage), outcome.Cause()).Inc()
	contactDuration.WithLabelValues(statusLabel).Observe(outcome.Duration.Seconds())
}

// ContactMetrics feeds pipeline outcomes into the contact counters.
type ContactMetrics struct{}

func (ContactMetrics) ObserveOutcome(_ context.Context, outcome domain.Outcome) {
	RecordContactOutcome(outcome)
}
