package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"vote-tally/models"
)

// Output file names inside the output directory.
const (
	LegislatorsFile = "legislators-support-oppose-count.csv"
	BillsFile       = "bills-support-oppose-count.csv"
)

// Row is anything the table writer can render column by column.
type Row interface {
	Field(name string) (string, bool)
}

// WriteTable writes a header line listing columns followed by one line per
// row. The file is created or overwritten; on failure the previous content
// (or absence) of path is left untouched. Intermediate directories are
// created automatically.
func WriteTable[T Row](path string, rows []T, columns []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &models.FileAccessError{Path: dir, Op: "create output dir", Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &models.FileAccessError{Path: path, Op: "create", Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		return &models.FileAccessError{Path: path, Op: "write header", Err: err}
	}

	record := make([]string, len(columns))
	for i, row := range rows {
		for j, col := range columns {
			v, ok := row.Field(col)
			if !ok {
				return fmt.Errorf("csv: row %d has no column %q", i, col)
			}
			record[j] = v
		}
		if err := w.Write(record); err != nil {
			return &models.FileAccessError{Path: path, Op: "write row", Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &models.FileAccessError{Path: path, Op: "flush", Err: err}
	}
	if err := tmp.Chmod(0644); err != nil {
		return &models.FileAccessError{Path: path, Op: "chmod", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &models.FileAccessError{Path: path, Op: "close", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &models.FileAccessError{Path: path, Op: "rename", Err: err}
	}
	committed = true
	return nil
}

// CSVSummaryWriter writes the two summary tables into a directory.
type CSVSummaryWriter struct {
	dir string
}

// NewCSVSummaryWriter returns a writer targeting dir.
func NewCSVSummaryWriter(dir string) *CSVSummaryWriter {
	return &CSVSummaryWriter{dir: dir}
}

// LegislatorsPath is where the legislator table is written.
func (c *CSVSummaryWriter) LegislatorsPath() string {
	return filepath.Join(c.dir, LegislatorsFile)
}

// BillsPath is where the bill table is written.
func (c *CSVSummaryWriter) BillsPath() string {
	return filepath.Join(c.dir, BillsFile)
}

func (c *CSVSummaryWriter) WriteLegislators(_ context.Context, stats *models.LegislatorStats) error {
	return WriteTable(c.LegislatorsPath(), stats.Rows(), models.LegislatorColumns)
}

func (c *CSVSummaryWriter) WriteBills(_ context.Context, stats *models.BillStats) error {
	return WriteTable(c.BillsPath(), stats.Rows(), models.BillColumns)
}

func (c *CSVSummaryWriter) Name() string { return "csv" }

func (c *CSVSummaryWriter) Close() error { return nil }
