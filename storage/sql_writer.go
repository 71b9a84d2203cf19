package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vote-tally/models"
	"vote-tally/utils"
)

const insertBatchSize = 50

// dialect captures the SQL differences between the supported databases.
type dialect struct {
	name        string
	timeType    string
	placeholder func(n int) string
}

var (
	postgresDialect = dialect{
		name:        "postgres",
		timeType:    "TIMESTAMPTZ",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
	sqliteDialect = dialect{
		name:        "sqlite",
		timeType:    "TIMESTAMP",
		placeholder: func(int) string { return "?" },
	}
)

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS aggregation_runs (
			run_id      TEXT PRIMARY KEY,
			started_at  ` + d.timeType + ` NOT NULL,
			finished_at ` + d.timeType + `
		)`,
		`CREATE TABLE IF NOT EXISTS legislator_stats (
			id                  INTEGER PRIMARY KEY,
			name                TEXT    NOT NULL,
			num_supported_bills INTEGER NOT NULL DEFAULT 0,
			num_opposed_bills   INTEGER NOT NULL DEFAULT 0,
			run_id              TEXT    NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bill_stats (
			id              INTEGER PRIMARY KEY,
			title           TEXT    NOT NULL,
			supporter_count INTEGER NOT NULL DEFAULT 0,
			opposer_count   INTEGER NOT NULL DEFAULT 0,
			primary_sponsor TEXT    NOT NULL,
			run_id          TEXT    NOT NULL
		)`,
	}
}

// buildInsert renders a multi-row INSERT for n rows of the given columns.
func (d dialect) buildInsert(table string, columns []string, n int) string {
	valueStrings := make([]string, 0, n)
	p := 1
	for i := 0; i < n; i++ {
		ph := make([]string, len(columns))
		for j := range columns {
			ph[j] = d.placeholder(p)
			p++
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(valueStrings, ","))
}

// sqlWriter mirrors the summary tables into a database. Each table is
// replaced wholesale inside its own transaction.
type sqlWriter struct {
	db      *sql.DB
	dialect dialect
	runID   string
	logger  *utils.Logger
}

func newSQLWriter(ctx context.Context, db *sql.DB, d dialect, logger *utils.Logger) (*sqlWriter, error) {
	w := &sqlWriter{db: db, dialect: d, runID: uuid.NewString(), logger: logger}

	for _, stmt := range d.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("%s: migrate: %w", d.name, err)
		}
	}

	q := fmt.Sprintf("INSERT INTO aggregation_runs (run_id, started_at) VALUES (%s, %s)",
		d.placeholder(1), d.placeholder(2))
	if _, err := db.ExecContext(ctx, q, w.runID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%s: record run: %w", d.name, err)
	}
	return w, nil
}

func (w *sqlWriter) Name() string { return w.dialect.name }

// RunID identifies the rows written by this writer.
func (w *sqlWriter) RunID() string { return w.runID }

func (w *sqlWriter) WriteLegislators(ctx context.Context, stats *models.LegislatorStats) error {
	columns := []string{"id", "name", "num_supported_bills", "num_opposed_bills", "run_id"}
	rows := stats.Rows()
	return w.replace(ctx, "legislator_stats", columns, len(rows), func(i int) []any {
		s := rows[i]
		return []any{s.ID, s.Name, s.NumSupportedBills, s.NumOpposedBills, w.runID}
	})
}

func (w *sqlWriter) WriteBills(ctx context.Context, stats *models.BillStats) error {
	columns := []string{"id", "title", "supporter_count", "opposer_count", "primary_sponsor", "run_id"}
	rows := stats.Rows()
	return w.replace(ctx, "bill_stats", columns, len(rows), func(i int) []any {
		s := rows[i]
		return []any{s.ID, s.Title, s.SupporterCount, s.OpposerCount, s.PrimarySponsor, w.runID}
	})
}

func (w *sqlWriter) replace(ctx context.Context, table string, columns []string, n int, values func(i int) []any) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin %s: %w", w.dialect.name, table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("%s: clear %s: %w", w.dialect.name, table, err)
	}

	for start := 0; start < n; start += insertBatchSize {
		end := start + insertBatchSize
		if end > n {
			end = n
		}
		args := make([]any, 0, (end-start)*len(columns))
		for i := start; i < end; i++ {
			args = append(args, values(i)...)
		}
		q := w.dialect.buildInsert(table, columns, end-start)
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("%s: insert %s: %w", w.dialect.name, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit %s: %w", w.dialect.name, table, err)
	}
	w.logger.Debug("[%s] Stored %d rows in %s (run %s)", w.dialect.name, n, table, w.runID)
	return nil
}

// Close marks the run finished and releases the connection.
func (w *sqlWriter) Close() error {
	q := fmt.Sprintf("UPDATE aggregation_runs SET finished_at = %s WHERE run_id = %s",
		w.dialect.placeholder(1), w.dialect.placeholder(2))
	_, markErr := w.db.Exec(q, time.Now().UTC(), w.runID)
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("%s: close: %w", w.dialect.name, err)
	}
	if markErr != nil {
		return fmt.Errorf("%s: finish run: %w", w.dialect.name, markErr)
	}
	return nil
}
