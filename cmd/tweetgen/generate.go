// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tweetgen/internal/config"
	"github.com/pdiddy/tweetgen/internal/generate"
	"github.com/pdiddy/tweetgen/internal/output"
	"github.com/pdiddy/tweetgen/internal/pipeline"
	"github.com/pdiddy/tweetgen/internal/warehouse"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.Load(config.Options{
		ConfigFile: cfgFile,
		EnvFile:    envFile,
		Secrets:    loadedSecrets,
		Flags:      cmd.Flags(),
		UserAgent:  "tweetgen/" + version,
		Notices:    os.Stderr,
	})
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Fetcher: warehouse.NewReader(cfg.Warehouse, logger),
		Generator: &generate.Generator{
			Backend: generate.NewOpenAIBackend(cfg.Generation, logger),
			Model:   cfg.Generation.Model,
			Log:     logger,
		},
		Write: output.WriteCSV,
		Out:   cmd.OutOrStdout(),
		Log:   logger,
	}

	_, err = p.Run(cmd.Context(), pipeline.Options{
		OutputPath: cfg.Generation.OutputPath,
		NumTweets:  cfg.Generation.NumTweets,
		DryRun:     dryRun,
		Model:      cfg.Generation.Model,
	})
	if errors.Is(err, pipeline.ErrNoTweets) {
		return fmt.Errorf("%w. Aborting", err)
	}
	return err
}

func init() {
	rootCmd.Flags().String("output", config.DefaultOutput, "output CSV file location")
	rootCmd.Flags().Int("num_tweets", config.DefaultNumTweets, "number of tweets to generate")
	rootCmd.Flags().String("model", config.DefaultModel, "text-generation model identifier")
	rootCmd.Flags().Bool("dry-run", false, "print the generation request as YAML instead of sending it")
}
