package storage

import (
	"path/filepath"
	"strings"
)

// Record is one data row keyed by header name. Values are never coerced.
type Record map[string]string

// TableReader loads a flat relation into ordered records.
type TableReader interface {
	ReadTable(path string) ([]Record, error)
}

// FileReader is the TableReader backed by local files.
type FileReader struct{}

// ReadTable implements TableReader.
func (FileReader) ReadTable(path string) ([]Record, error) {
	return ReadTable(path)
}

// ReadTable reads a JSON array of objects when path ends in .json and a
// headed CSV file otherwise.
func ReadTable(path string) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(path)
	}
	return ReadCSV(path)
}
