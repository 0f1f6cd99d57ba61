package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyPostsMessage(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := New(Config{Endpoint: srv.URL + "/", Destination: "discord"})
	require.NoError(t, client.Notify(context.Background(), "delivery failed"))

	assert.Equal(t, "cv-site", got["userId"])
	assert.Equal(t, "delivery failed", got["text"])
	assert.Equal(t, "discord", got["destination"])
}

func TestNotifyReportsGatewayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(Config{Endpoint: srv.URL}).Notify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestNotifyRequiresEndpoint(t *testing.T) {
	assert.Error(t, New(Config{}).Notify(context.Background(), "x"))
}
