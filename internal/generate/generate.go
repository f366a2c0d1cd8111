// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate composes the tweet generation prompt, sends it to the
// text-generation service, and parses the numbered list it returns.
package generate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/tweetgen/internal/logging"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o"

	// TokensPerTweet is the completion token budget granted per requested tweet.
	TokensPerTweet = 150

	// Temperature favors diverse output over deterministic output.
	Temperature = 0.8
)

// Message is one turn of a chat-style exchange.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Request is a single-turn generation request: a system instruction, a
// user instruction, and the sampling parameters.
type Request struct {
	Model       string    `json:"model" yaml:"model"`
	Messages    []Message `json:"messages" yaml:"messages"`
	MaxTokens   int       `json:"max_tokens" yaml:"max_tokens"`
	Temperature float64   `json:"temperature" yaml:"temperature"`
	N           int       `json:"n" yaml:"n"`
}

// BuildRequest composes the generation request for n tweets from the
// grounding (style) and recency (topic) tweet sets.
func BuildRequest(model string, grounding, recency []string, n int) (Request, error) {
	if n < 1 {
		return Request{}, fmt.Errorf("tweet count must be at least 1, got %d", n)
	}
	if model == "" {
		model = DefaultModel
	}

	system, err := renderSystemPrompt(grounding, recency, n)
	if err != nil {
		return Request{}, fmt.Errorf("rendering prompt: %w", err)
	}

	return Request{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: userPrompt(n)},
		},
		MaxTokens:   TokensPerTweet * n,
		Temperature: Temperature,
		N:           1,
	}, nil
}

// Backend abstracts the text-generation service so tests can supply a mock.
// Complete sends one request and returns the raw response text.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Generator turns tweet sets into generated tweets through a Backend.
type Generator struct {
	Backend Backend
	Model   string
	Log     *zap.Logger
}

// Generate builds the request, calls the backend once, and parses the
// response. On failure it returns an empty result and the cause; the
// caller decides how to report it.
func (g *Generator) Generate(ctx context.Context, grounding, recency []string, n int) ([]string, error) {
	log := logging.OrNop(g.Log)

	req, err := BuildRequest(g.Model, grounding, recency, n)
	if err != nil {
		return nil, err
	}

	log.Debug("calling generation service",
		zap.String("model", req.Model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Int("grounding", len(grounding)),
		zap.Int("recency", len(recency)))

	raw, err := g.Backend.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generation service: %w", err)
	}

	tweets := ParseResponse(raw)
	log.Debug("parsed generation response", zap.Int("requested", n), zap.Int("parsed", len(tweets)))
	return tweets, nil
}
