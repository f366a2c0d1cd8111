// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/tweetgen/internal/httputil"
	"github.com/pdiddy/tweetgen/pkg/types"
)

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// OpenAIBackend calls the OpenAI chat completions endpoint.
type OpenAIBackend struct {
	APIKey     string
	BaseURL    string
	UserAgent  string
	MaxRetries int
	Client     *http.Client
	Log        *zap.Logger
}

// NewOpenAIBackend returns a backend configured from the generation settings.
func NewOpenAIBackend(cfg types.GenerationConfig, log *zap.Logger) *OpenAIBackend {
	return &OpenAIBackend{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Client:     &http.Client{Timeout: cfg.Timeout},
		Log:        log,
	}
}

// chatResponse is the subset of the chat completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// apiError is the error envelope returned on non-200 responses.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete posts req to /chat/completions and returns the first choice's
// message content with surrounding whitespace removed.
func (o *OpenAIBackend) Complete(ctx context.Context, req Request) (string, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	base := o.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := strings.TrimRight(base, "/") + "/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.APIKey)
	if o.UserAgent != "" {
		httpReq.Header.Set("User-Agent", o.UserAgent)
	}

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, o.MaxRetries, o.Log)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding OpenAI response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}

	return strings.TrimSpace(cResp.Choices[0].Message.Content), nil
}
