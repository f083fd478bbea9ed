package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_OnThisDay(t *testing.T) {
	t.Run("fetches and decodes events", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/feed/onthisday/events/03/07", r.URL.Path)
			assert.Equal(t, "SednaFM/1.0", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"events": [
					{"year": 1962, "text": "NASA launches a satellite", "pages": [{"title": "NASA", "description": "Space agency"}]},
					{"year": 1876, "text": "A patent was filed"}
				]
			}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		events, err := client.OnThisDay(context.Background(), 3, 7)
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, 1962, events[0].Year)
		assert.Equal(t, "NASA", events[0].Pages[0].Title)
		assert.Empty(t, events[1].Pages, "absent fields default to empty")
	})

	t.Run("errors on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		_, err := client.OnThisDay(context.Background(), 1, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("errors on malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		_, err := client.OnThisDay(context.Background(), 1, 1)
		assert.Error(t, err)
	})
}
