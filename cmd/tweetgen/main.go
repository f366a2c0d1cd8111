// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tweetgen CLI.
// It fetches grounding and recency tweets from the warehouse, asks the
// text-generation service for new tweets, and writes them to a CSV file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/tweetgen/internal/logging"
	"github.com/pdiddy/tweetgen/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from the secrets directory at startup.
	loadedSecrets map[string]string

	logger *zap.Logger
)

// rootCmd generates tweets when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "tweetgen",
	Short: "Generate tweets in a house style from warehouse tweet history",
	Long: `tweetgen reads two sets of tweets from the data warehouse: grounding tweets
that set the writing style and recency tweets that set the current themes.
It sends both to the text-generation service with a prompt asking for a
numbered list of new tweets, then writes the list to a CSV file with a
single generated_tweet column.

Credentials come from the environment (OPENAI_API_KEY, SNOWFLAKE_USER,
SNOWFLAKE_PASSWORD, SNOWFLAKE_ACCOUNT, SNOWFLAKE_WAREHOUSE,
SNOWFLAKE_DATABASE, SNOWFLAKE_SCHEMA), a .env file, a tweetgen.yaml
config file, or files in .secrets/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tweetgen.yaml or ~/.config/tweetgen/tweetgen.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with credentials (ignored if absent)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files, one per key")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
