// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package warehouse reads tweet text from the data warehouse.
//
// Each Fetch opens its own connection, runs one query, collects the first
// column of every row in result order, and closes the rows and the
// connection before returning, on success and failure alike.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/pdiddy/tweetgen/internal/logging"
	"github.com/pdiddy/tweetgen/pkg/types"
)

// GroundingQuery selects recent posts from the accounts whose writing style
// generated tweets should match.
const GroundingQuery = `select t.text from twitter_tweets t join twitter_profiles p on t.poster_id = p.id where p.name = 'SquadsProtocol' or p.name = 'Carlos_0x' or p.name = 'SimkinStepan' ORDER by t.timestamp DESC LIMIT 100`

// RecencyQuery selects recent posts from the accounts whose topics generated
// tweets should draw on.
const RecencyQuery = `select t.text from twitter_tweets t join twitter_profiles p on t.poster_id = p.id where p.name = 'sytaylor' or p.name = 'chuk_xyz' ORDER by t.timestamp DESC LIMIT 500`

// Reader runs queries against the warehouse described by its config.
type Reader struct {
	cfg types.WarehouseConfig
	log *zap.Logger
}

// NewReader returns a Reader for cfg. A nil logger discards debug output.
func NewReader(cfg types.WarehouseConfig, log *zap.Logger) *Reader {
	if cfg.Driver == "" {
		cfg.Driver = types.DriverSnowflake
	}
	return &Reader{cfg: cfg, log: logging.OrNop(log)}
}

// Fetch runs query and returns the first column of every result row as a
// string, in warehouse order. NULL values become empty strings. On any
// connect, execute, or scan failure Fetch returns a nil slice and the
// cause; it does not panic.
func (r *Reader) Fetch(ctx context.Context, query string) (texts []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			texts, err = nil, fmt.Errorf("warehouse driver panic: %v", rec)
		}
	}()

	dsn, err := DSN(r.cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(r.cfg.Driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", r.cfg.Driver, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to warehouse: %w", err)
	}
	r.log.Debug("warehouse connected", zap.String("driver", string(r.cfg.Driver)))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("query returned no columns")
	}

	dest := make([]any, len(cols))
	first := new(sql.NullString)
	dest[0] = first
	for i := 1; i < len(cols); i++ {
		dest[i] = new(any)
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(texts), err)
		}
		texts = append(texts, first.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	r.log.Debug("warehouse query complete", zap.Int("rows", len(texts)))
	return texts, nil
}

// DSN returns the driver connection string for cfg. Snowflake DSNs are
// assembled from the six connection parameters with OCSP fail-open; other
// drivers use cfg.DSN verbatim.
func DSN(cfg types.WarehouseConfig) (string, error) {
	switch cfg.Driver {
	case types.DriverSnowflake, "":
		dsn, err := gosnowflake.DSN(&gosnowflake.Config{
			Account:      cfg.Account,
			User:         cfg.User,
			Password:     cfg.Password,
			Warehouse:    cfg.Warehouse,
			Database:     cfg.Database,
			Schema:       cfg.Schema,
			OCSPFailOpen: gosnowflake.OCSPFailOpenTrue,
		})
		if err != nil {
			return "", fmt.Errorf("building snowflake DSN: %w", err)
		}
		return dsn, nil
	case types.DriverPostgres, types.DriverSQLite:
		if cfg.DSN == "" {
			return "", fmt.Errorf("driver %s requires a DSN", cfg.Driver)
		}
		return cfg.DSN, nil
	default:
		return "", fmt.Errorf("unsupported warehouse driver %q: use snowflake, pgx, or sqlite3", cfg.Driver)
	}
}
