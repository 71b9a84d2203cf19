package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"vote-tally/utils"
)

// SQLiteWriter mirrors the summary tables into a local SQLite file.
type SQLiteWriter struct {
	*sqlWriter
}

// NewSQLiteWriter opens (creating if needed) the database at path and
// registers a new aggregation run.
func NewSQLiteWriter(ctx context.Context, path string, logger *utils.Logger) (*SQLiteWriter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps multi-statement DDL and transactions on one
	// handle.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	w, err := newSQLWriter(ctx, db, sqliteDialect, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteWriter{sqlWriter: w}, nil
}
