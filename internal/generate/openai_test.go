// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tweetgen/pkg/types"
)

func TestOpenAIBackendComplete(t *testing.T) {
	var got Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "tweetgen/test", r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"\n1. one\n2. two\n  "}}]}`))
	}))
	defer ts.Close()

	backend := NewOpenAIBackend(types.GenerationConfig{
		AIConfig:   types.AIConfig{APIKey: "sk-test", BaseURL: ts.URL + "/v1/"},
		HTTPConfig: types.HTTPConfig{UserAgent: "tweetgen/test"},
	}, nil)

	req, err := BuildRequest("gpt-4o", []string{"style"}, []string{"topic"}, 2)
	require.NoError(t, err)

	text, err := backend.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "1. one\n2. two", text)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 300, got.MaxTokens)
	assert.InDelta(t, 0.8, got.Temperature, 1e-9)
	assert.Equal(t, 1, got.N)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Please generate 2 diverse tweets.", got.Messages[1].Content)
}

func TestOpenAIBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error envelope",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantErr: "OpenAI API returned 401: Incorrect API key provided",
		},
		{
			name:    "plain error body",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantErr: "OpenAI API returned 502: upstream down",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "no choices",
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"choices":`,
			wantErr: "decoding OpenAI response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			backend := &OpenAIBackend{APIKey: "k", BaseURL: ts.URL, Client: ts.Client()}
			req, err := BuildRequest("", []string{"a"}, []string{"b"}, 1)
			require.NoError(t, err)

			_, err = backend.Complete(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAIBackendSingleAttemptByDefault(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	backend := &OpenAIBackend{APIKey: "k", BaseURL: ts.URL, Client: ts.Client()}
	req, err := BuildRequest("", []string{"a"}, []string{"b"}, 1)
	require.NoError(t, err)

	_, err = backend.Complete(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIBackendUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	backend := &OpenAIBackend{APIKey: "k", BaseURL: url}
	req, err := BuildRequest("", []string{"a"}, []string{"b"}, 1)
	require.NoError(t, err)

	_, err = backend.Complete(context.Background(), req)
	assert.ErrorContains(t, err, "calling OpenAI API")
}
