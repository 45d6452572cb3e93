package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(url string) *Provider {
	return NewProvider(url, 2*time.Second, logger.NewNopLogger())
}

func TestProvider_Reply(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"Hi"}`))
	}))
	defer srv.Close()

	reply, err := newTestProvider(srv.URL).Reply(context.Background(), "Hello")

	require.NoError(t, err)
	assert.Equal(t, "Hi", reply)
	assert.Equal(t, map[string]string{"message": "Hello"}, got)
}

func TestProvider_ReplyEmptyStringIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":""}`))
	}))
	defer srv.Close()

	reply, err := newTestProvider(srv.URL).Reply(context.Background(), "Hello")

	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestProvider_ReplyFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  error
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"response":`))
			},
		},
		{
			name: "missing response field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"answer":"Hi"}`))
			},
			target: llm.ErrEmptyReply,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte(`Hi`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestProvider(srv.URL).Reply(context.Background(), "Hello")

			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestProvider_ReplyConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestProvider(url).Reply(context.Background(), "Hello")

	assert.Error(t, err)
}
