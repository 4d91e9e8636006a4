package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	resp, err := NewClient(time.Second).PostJSON(context.Background(), server.URL,
		map[string]string{"x-api-key": "secret"}, map[string]string{"text": "hello"})

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestPostJSON_ErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`quota exceeded`))
	}))
	defer server.Close()

	resp, err := NewClientWith(server.Client()).PostJSON(context.Background(), server.URL, nil, struct{}{})

	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "quota exceeded", string(resp.Body))
}

func TestPostJSON_UnmarshalablePayload(t *testing.T) {
	_, err := NewClient(0).PostJSON(context.Background(), "http://127.0.0.1:1", nil, make(chan int))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal request")
}

func TestPostJSON_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(0).PostJSON(ctx, server.URL, nil, struct{}{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
