package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"vote-tally/models"
)

const utf8BOM = "\ufeff"

// ReadCSV reads a CSV file whose first line names the fields. Every data
// row must have exactly as many fields as the header.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	return readCSV(path, f)
}

func readCSV(path string, src io.Reader) ([]Record, error) {
	r := csv.NewReader(src)
	// Zero pins every row to the header's field count.
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.MalformedRecordError{Path: path, Reason: "missing header row"}
	}
	if err != nil {
		return nil, csvError(path, err)
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &models.MalformedRecordError{Path: path, Line: 1,
				Reason: fmt.Sprintf("empty header name in column %d", i+1)}
		}
		if _, dup := seen[name]; dup {
			return nil, &models.MalformedRecordError{Path: path, Line: 1, Field: name,
				Reason: "duplicate header name"}
		}
		seen[name] = struct{}{}
		header[i] = name
	}

	var records []Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}

		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// csvError separates syntax problems in the file from I/O failures.
func csvError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &models.MalformedRecordError{Path: path, Line: pe.Line, Reason: pe.Err.Error()}
	}
	return &models.FileAccessError{Path: path, Op: "read", Err: err}
}
