package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"vote-tally/utils"
)

// PostgresWriter mirrors the summary tables into PostgreSQL.
type PostgresWriter struct {
	*sqlWriter
}

// NewPostgresWriter opens a connection to PostgreSQL, waiting for it to
// accept pings with retry's back-off, runs schema migrations and registers
// a new aggregation run.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	w, err := newSQLWriter(ctx, db, postgresDialect, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresWriter{sqlWriter: w}, nil
}
