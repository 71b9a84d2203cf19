package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"vote-tally/models"
	"vote-tally/utils"
)

func TestPostgresInsertPlaceholders(t *testing.T) {
	got := postgresDialect.buildInsert("bill_stats", []string{"id", "title"}, 2)
	want := "INSERT INTO bill_stats (id, title) VALUES ($1,$2),($3,$4)"
	if got != want {
		t.Errorf("buildInsert:\n got %q\nwant %q", got, want)
	}
}

func TestSQLiteInsertPlaceholders(t *testing.T) {
	got := sqliteDialect.buildInsert("legislator_stats", []string{"id", "name", "run_id"}, 1)
	want := "INSERT INTO legislator_stats (id, name, run_id) VALUES (?,?,?)"
	if got != want {
		t.Errorf("buildInsert:\n got %q\nwant %q", got, want)
	}
}

func manyLegislators(n int) *models.LegislatorStats {
	stats := models.NewLegislatorStats(n)
	for i := 1; i <= n; i++ {
		stats.Add(&models.LegislatorStat{ID: i, Name: "Member", NumSupportedBills: i % 3, NumOpposedBills: i % 2})
	}
	return stats
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	return n
}

func TestSQLiteWriterReplacesTables(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "tally.db")

	first, err := NewSQLiteWriter(ctx, path, utils.Discard())
	if err != nil {
		t.Fatalf("NewSQLiteWriter: %v", err)
	}
	// More rows than one insert batch.
	if err := first.WriteLegislators(ctx, manyLegislators(120)); err != nil {
		t.Fatalf("WriteLegislators: %v", err)
	}
	if err := first.WriteBills(ctx, sampleBillStats()); err != nil {
		t.Fatalf("WriteBills: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewSQLiteWriter(ctx, path, utils.Discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if second.RunID() == first.RunID() {
		t.Error("each writer should get its own run id")
	}
	if err := second.WriteLegislators(ctx, manyLegislators(3)); err != nil {
		t.Fatalf("WriteLegislators: %v", err)
	}
	if err := second.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if n := countRows(t, db, "SELECT COUNT(*) FROM legislator_stats"); n != 3 {
		t.Errorf("legislator_stats rows: got %d, want 3", n)
	}
	if n := countRows(t, db, "SELECT COUNT(*) FROM legislator_stats WHERE run_id = ?", second.RunID()); n != 3 {
		t.Errorf("rows stamped with second run: got %d, want 3", n)
	}
	if n := countRows(t, db, "SELECT COUNT(*) FROM bill_stats WHERE run_id = ?", first.RunID()); n != 2 {
		t.Errorf("bill_stats from first run: got %d, want 2", n)
	}
	if n := countRows(t, db, "SELECT COUNT(*) FROM aggregation_runs WHERE finished_at IS NOT NULL"); n != 2 {
		t.Errorf("finished runs: got %d, want 2", n)
	}

	var sponsor string
	var supporters int
	if err := db.QueryRow("SELECT primary_sponsor, supporter_count FROM bill_stats WHERE id = 10").
		Scan(&sponsor, &supporters); err != nil {
		t.Fatalf("select bill: %v", err)
	}
	if sponsor != "Alice" || supporters != 1 {
		t.Errorf("bill 10: got (%q, %d), want (Alice, 1)", sponsor, supporters)
	}
}

func TestSQLiteWriterRequiresPath(t *testing.T) {
	if _, err := NewSQLiteWriter(context.Background(), "  ", utils.Discard()); err == nil {
		t.Error("expected error for empty path")
	}
}
