// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the run configuration once at startup.
//
// Values resolve in this order, highest first: command-line flags, process
// environment, the dotenv file, the YAML config file, the secrets
// directory, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/tweetgen/internal/secrets"
	"github.com/pdiddy/tweetgen/pkg/types"
)

const (
	DefaultOutput    = "generated_tweets.csv"
	DefaultNumTweets = 5
	DefaultModel     = "gpt-4o"
	DefaultEnvFile   = ".env"
)

// setting ties a config key to the environment variable that backs it.
type setting struct {
	key string
	env string
}

var (
	apiKey    = setting{"generation.api_key", "OPENAI_API_KEY"}
	user      = setting{"warehouse.user", "SNOWFLAKE_USER"}
	password  = setting{"warehouse.password", "SNOWFLAKE_PASSWORD"}
	account   = setting{"warehouse.account", "SNOWFLAKE_ACCOUNT"}
	whName    = setting{"warehouse.warehouse", "SNOWFLAKE_WAREHOUSE"}
	database  = setting{"warehouse.database", "SNOWFLAKE_DATABASE"}
	schema    = setting{"warehouse.schema", "SNOWFLAKE_SCHEMA"}
	driver    = setting{"warehouse.driver", "WAREHOUSE_DRIVER"}
	dsn       = setting{"warehouse.dsn", "WAREHOUSE_DSN"}
	baseURL   = setting{"generation.base_url", "OPENAI_BASE_URL"}
	model     = setting{"generation.model", "OPENAI_MODEL"}
	envBacked = []setting{apiKey, user, password, account, whName, database, schema, driver, dsn, baseURL, model}
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"output":     "generation.output",
	"num_tweets": "generation.num_tweets",
	"model":      "generation.model",
}

// MissingError lists required values that were not supplied. Names are the
// environment variables a user is expected to set.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required credentials: %s. Please ensure all required variables are set in your environment or .env file",
		strings.Join(e.Names, ", "))
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit YAML config path. When empty, tweetgen.yaml
	// is searched in the working directory and ~/.config/tweetgen/.
	ConfigFile string

	// EnvFile is a dotenv file; a missing file is ignored.
	EnvFile string

	// Secrets holds values loaded from the secrets directory, keyed by file name.
	Secrets map[string]string

	// Flags are the parsed command-line flags, if any.
	Flags *pflag.FlagSet

	// UserAgent is sent with generation requests.
	UserAgent string

	// Notices receives human-readable notes such as the config file in use.
	Notices io.Writer
}

// Load resolves the configuration and validates that every required value
// is present. A *MissingError is returned when any are absent.
func Load(opts Options) (types.Config, error) {
	v := viper.New()

	v.SetDefault(driver.key, string(types.DriverSnowflake))
	v.SetDefault(model.key, DefaultModel)
	v.SetDefault("generation.num_tweets", DefaultNumTweets)
	v.SetDefault("generation.output", DefaultOutput)
	v.SetDefault("generation.max_retries", 0)
	v.SetDefault("generation.timeout", "0s")
	v.SetDefault("generation.user_agent", opts.UserAgent)

	for _, s := range envBacked {
		if val, ok := opts.Secrets[secrets.FileName(s.env)]; ok {
			v.SetDefault(s.key, val)
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return types.Config{}, err
	}
	if used := v.ConfigFileUsed(); used != "" && opts.Notices != nil {
		fmt.Fprintln(opts.Notices, "Using config file:", used)
	}
	if err := mergeEnvFile(v, opts.EnvFile); err != nil {
		return types.Config{}, err
	}

	for _, s := range envBacked {
		if err := v.BindEnv(s.key, s.env); err != nil {
			return types.Config{}, fmt.Errorf("binding %s: %w", s.env, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return types.Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := types.Config{
		Warehouse: types.WarehouseConfig{
			Driver:    types.WarehouseDriver(v.GetString(driver.key)),
			DSN:       v.GetString(dsn.key),
			User:      v.GetString(user.key),
			Password:  v.GetString(password.key),
			Account:   v.GetString(account.key),
			Warehouse: v.GetString(whName.key),
			Database:  v.GetString(database.key),
			Schema:    v.GetString(schema.key),
		},
		Generation: types.GenerationConfig{
			AIConfig: types.AIConfig{
				Model:      v.GetString(model.key),
				APIKey:     v.GetString(apiKey.key),
				BaseURL:    v.GetString(baseURL.key),
				MaxRetries: v.GetInt("generation.max_retries"),
			},
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("generation.timeout"),
				UserAgent: v.GetString("generation.user_agent"),
			},
			NumTweets:  v.GetInt("generation.num_tweets"),
			OutputPath: v.GetString("generation.output"),
		},
	}

	return cfg, Validate(cfg)
}

// Validate checks that every required value is present and that the
// requested tweet count is usable.
func Validate(cfg types.Config) error {
	var missing []string
	check := func(val string, s setting) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, s.env)
		}
	}

	check(cfg.Generation.APIKey, apiKey)
	switch cfg.Warehouse.Driver {
	case types.DriverSnowflake:
		w := cfg.Warehouse
		check(w.User, user)
		check(w.Password, password)
		check(w.Account, account)
		check(w.Warehouse, whName)
		check(w.Database, database)
		check(w.Schema, schema)
	case types.DriverPostgres, types.DriverSQLite:
		check(cfg.Warehouse.DSN, dsn)
	default:
		return fmt.Errorf("unsupported warehouse driver %q: use snowflake, pgx, or sqlite3", cfg.Warehouse.Driver)
	}

	if len(missing) > 0 {
		return &MissingError{Names: missing}
	}
	if cfg.Generation.NumTweets < 1 {
		return fmt.Errorf("num_tweets must be at least 1, got %d", cfg.Generation.NumTweets)
	}
	if cfg.Generation.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("tweetgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "tweetgen"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// mergeEnvFile layers dotenv values over the config file. Only the
// recognized variables are taken.
func mergeEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	merged := map[string]any{}
	for _, s := range envBacked {
		name := strings.ToLower(s.env)
		if !ev.IsSet(name) {
			continue
		}
		section, field, _ := strings.Cut(s.key, ".")
		sub, ok := merged[section].(map[string]any)
		if !ok {
			sub = map[string]any{}
			merged[section] = sub
		}
		sub[field] = ev.GetString(name)
	}
	if len(merged) == 0 {
		return nil
	}
	return v.MergeConfigMap(merged)
}
