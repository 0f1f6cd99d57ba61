package main

import (
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

func TestGenerateEvents(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	span := 7 * 24 * time.Hour
	events := generateEvents(rand.New(rand.NewSource(42)), 300, now, span)

	require.Len(t, events, 300)
	statuses := map[int]int{}
	for i, event := range events {
		statuses[event.Status]++
		assert.False(t, event.CreatedAt.After(now))
		assert.False(t, event.CreatedAt.Before(now.Add(-span)))
		assert.NotEmpty(t, event.ClientIP)
		if i > 0 {
			assert.False(t, event.CreatedAt.Before(events[i-1].CreatedAt))
		}

		switch event.Status {
		case http.StatusOK:
			assert.Equal(t, domain.StageDelivered, event.Stage)
			assert.Empty(t, event.Cause)
		case http.StatusForbidden:
			assert.Equal(t, domain.StageVerification, event.Stage)
			assert.Contains(t, event.Cause, "verification_")
		case http.StatusInternalServerError:
			assert.Contains(t, []domain.Stage{domain.StageComposition, domain.StageRelay}, event.Stage)
			assert.NotEmpty(t, event.Cause)
		default:
			t.Fatalf("unexpected status %d", event.Status)
		}
	}
	assert.Positive(t, statuses[http.StatusOK])
	assert.Positive(t, statuses[http.StatusForbidden])
	assert.Positive(t, statuses[http.StatusInternalServerError])
}

func TestGenerateEventsIsReproducible(t *testing.T) {
	now := time.Now()
	a := generateEvents(rand.New(rand.NewSource(7)), 20, now, time.Hour)
	b := generateEvents(rand.New(rand.NewSource(7)), 20, now, time.Hour)
	assert.Equal(t, a, b)
}
