package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"vote-tally/models"
)

// ReadJSON reads a file holding a JSON array of flat objects. Scalar values
// are returned in their textual form so callers convert them the same way
// as CSV fields.
func ReadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.FileAccessError{Path: path, Op: "read", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, &models.MalformedRecordError{Path: path, Reason: fmt.Sprintf("decode json: %v", err)}
	}
	if rows == nil {
		return nil, &models.MalformedRecordError{Path: path, Reason: "expected a JSON array of objects"}
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec := make(Record, len(row))
		for name, v := range row {
			s, ok := jsonScalar(v)
			if !ok {
				// Line carries the 1-based element index for JSON inputs.
				return nil, &models.MalformedRecordError{Path: path, Line: i + 1, Field: name,
					Reason: "nested values are not supported"}
			}
			rec[name] = s
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonScalar(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
