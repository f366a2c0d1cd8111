// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one tweet generation pass: fetch the grounding and
// recency tweets, generate new tweets from them, and write the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tweetgen/internal/generate"
	"github.com/pdiddy/tweetgen/internal/logging"
	"github.com/pdiddy/tweetgen/internal/output"
	"github.com/pdiddy/tweetgen/internal/warehouse"
)

var (
	// ErrNoTweets means a warehouse fetch failed or returned no rows.
	ErrNoTweets = errors.New("could not fetch tweets from warehouse")

	// ErrNothingGenerated means generation failed or produced no entries.
	ErrNothingGenerated = errors.New("no tweets were generated")
)

// Fetcher runs a warehouse query and returns the first column of each row.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// Generator produces tweets from the grounding and recency sets.
type Generator interface {
	Generate(ctx context.Context, grounding, recency []string, n int) ([]string, error)
}

// WriteFunc persists the generated tweets to path.
type WriteFunc func(path string, tweets []string) error

// Options are the per-run parameters.
type Options struct {
	OutputPath string
	NumTweets  int

	// DryRun prints the composed generation request instead of sending it.
	DryRun bool
	Model  string
}

// Summary reports what a run did.
type Summary struct {
	Grounding  int
	Recency    int
	Generated  int
	OutputPath string
}

// Pipeline wires the stages together. Out receives the progress lines a
// user watches; Log receives structured diagnostics.
type Pipeline struct {
	Fetcher   Fetcher
	Generator Generator
	Write     WriteFunc
	Out       io.Writer
	Log       *zap.Logger
}

// Run executes the pipeline once. Both fetches complete before either
// result is checked; if either is empty, Run returns ErrNoTweets without
// calling the generator. If generation yields nothing, no file is written.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Summary, error) {
	log := logging.OrNop(p.Log)
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	write := p.Write
	if write == nil {
		write = output.WriteCSV
	}

	grounding, recency := p.fetchAll(ctx, out, log)
	summary := Summary{Grounding: len(grounding), Recency: len(recency)}
	if len(grounding) == 0 || len(recency) == 0 {
		return summary, ErrNoTweets
	}

	if opts.DryRun {
		return summary, p.dumpRequest(out, opts, grounding, recency)
	}

	fmt.Fprintln(out, "Generating new tweets...")
	tweets, err := p.Generator.Generate(ctx, grounding, recency, opts.NumTweets)
	if err != nil {
		log.Error("generation failed", logging.Error(err))
		return summary, fmt.Errorf("%w: %v", ErrNothingGenerated, logging.Mask(err.Error()))
	}
	if len(tweets) == 0 {
		return summary, ErrNothingGenerated
	}

	if err := write(opts.OutputPath, tweets); err != nil {
		return summary, err
	}
	summary.Generated = len(tweets)
	summary.OutputPath = opts.OutputPath

	fmt.Fprintf(out, "Successfully generated %d tweets and saved to %s\n", len(tweets), opts.OutputPath)
	log.Info("run complete",
		zap.Int("grounding", summary.Grounding),
		zap.Int("recency", summary.Recency),
		zap.Int("generated", summary.Generated),
		zap.String("output", summary.OutputPath))
	return summary, nil
}

// fetchAll runs the grounding and recency queries concurrently. A failed
// fetch is logged and treated as empty; it does not cancel the other.
func (p *Pipeline) fetchAll(ctx context.Context, out io.Writer, log *zap.Logger) (grounding, recency []string) {
	fmt.Fprintln(out, "Fetching grounding tweets...")
	fmt.Fprintln(out, "Fetching recency tweets...")

	var g errgroup.Group
	g.Go(func() error {
		grounding = p.fetch(ctx, "grounding", warehouse.GroundingQuery, log)
		return nil
	})
	g.Go(func() error {
		recency = p.fetch(ctx, "recency", warehouse.RecencyQuery, log)
		return nil
	})
	g.Wait()
	return grounding, recency
}

func (p *Pipeline) fetch(ctx context.Context, category, query string, log *zap.Logger) []string {
	texts, err := p.Fetcher.Fetch(ctx, query)
	if err != nil {
		log.Error("error connecting to warehouse or fetching data",
			zap.String("category", category), logging.Error(err))
		return nil
	}
	if len(texts) == 0 {
		log.Warn("warehouse query returned no rows", zap.String("category", category))
		return nil
	}
	log.Debug("fetched tweets", zap.String("category", category), zap.Int("count", len(texts)))
	return texts
}

// dumpRequest writes the request that would be sent, as YAML.
func (p *Pipeline) dumpRequest(out io.Writer, opts Options, grounding, recency []string) error {
	req, err := generate.BuildRequest(opts.Model, grounding, recency, opts.NumTweets)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(req); err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return enc.Close()
}
