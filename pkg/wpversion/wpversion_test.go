package wpversion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleResponse = `{
  "offers": [
    {"response": "upgrade", "current": "6.4.2", "version": "6.4.2"},
    {"response": "autoupdate", "current": "6.4.1"},
    {"response": "autoupdate", "current": "not-a-version"},
    {"response": "autoupdate"}
  ],
  "translations": []
}`

func TestLatestFromResponse(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{"picks_highest", sampleResponse, "6.4.2", true},
		{"unordered_offers", `{"offers":[{"current":"5.9"},{"current":"6.0.1"},{"current":"6.0"}]}`, "6.0.1", true},
		{"no_offers", `{"offers":[]}`, "", false},
		{"missing_offers", `{"translations":[]}`, "", false},
		{"not_json", `a:1:{s:6:"offers";}`, "", false},
		{"empty", ``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LatestFromResponse([]byte(tt.body))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sampleResponse))
		}))
		defer srv.Close()

		got, ok := New(srv.URL).FetchLatestKnownVersion(context.Background())
		assert.True(t, ok)
		assert.Equal(t, "6.4.2", got)
	})

	t.Run("server_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, ok := New(srv.URL).FetchLatestKnownVersion(context.Background())
		assert.False(t, ok)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, ok := New(url).FetchLatestKnownVersion(context.Background())
		assert.False(t, ok)
	})

	t.Run("default_url", func(t *testing.T) {
		assert.Equal(t, DefaultURL, New("").URL)
	})
}
