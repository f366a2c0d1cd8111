// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "tweetgen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WarehouseDriver names the database/sql driver used to reach the warehouse.
type WarehouseDriver string

const (
	DriverSnowflake WarehouseDriver = "snowflake"
	DriverPostgres  WarehouseDriver = "pgx"
	DriverSQLite    WarehouseDriver = "sqlite3"
)

// WarehouseConfig holds the connection parameters for the tweet warehouse.
// The six Snowflake fields are opaque strings; only their presence is checked.
type WarehouseConfig struct {
	// Driver selects the database/sql driver (default snowflake).
	Driver WarehouseDriver `json:"driver" yaml:"driver"`

	// DSN is the connection string for the pgx and sqlite3 drivers.
	// Ignored for snowflake, which builds its DSN from the fields below.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	User      string `json:"user" yaml:"user"`
	Password  string `json:"-" yaml:"-"`
	Account   string `json:"account" yaml:"account"`
	Warehouse string `json:"warehouse" yaml:"warehouse"`
	Database  string `json:"database" yaml:"database"`
	Schema    string `json:"schema" yaml:"schema"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"-" yaml:"-"`

	// BaseURL overrides the API endpoint root (e.g. "https://api.openai.com/v1").
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retries on HTTP 429. Zero sends one request only.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerationConfig holds settings for the generation stage.
type GenerationConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// NumTweets is the requested number of generated tweets (default 5).
	NumTweets int `json:"num_tweets" yaml:"num_tweets"`

	// OutputPath is the CSV file the generated tweets are written to.
	OutputPath string `json:"output" yaml:"output"`
}

// Config groups everything a run needs. It is built once at startup and
// passed to each stage.
type Config struct {
	Warehouse  WarehouseConfig  `json:"warehouse" yaml:"warehouse"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}
