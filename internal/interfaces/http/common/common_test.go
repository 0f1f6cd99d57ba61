package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(zerolog.Nop(), rec, http.StatusForbidden, map[string]any{"status": 403})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":403}`, rec.Body.String())
}

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		in       string
		want     int
		accepted bool
	}{
		{"", 10, false},
		{"abc", 10, false},
		{"-3", 10, false},
		{"0", 10, false},
		{" 25 ", 25, true},
	}
	for _, tc := range cases {
		got, ok := ParsePositiveInt(tc.in, 10)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.accepted, ok, tc.in)
	}
}

func TestUserContextRoundTrip(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithUser(context.Background(), AuthenticatedUser{ID: "admin-1"})
	user, ok := UserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin-1", user.ID)
}
