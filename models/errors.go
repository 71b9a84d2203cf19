package models

import "fmt"

// FileAccessError reports an input file that cannot be read or an output
// location that cannot be written.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// MalformedRecordError reports a row that does not fit its expected columns.
// Line is 1-based and counts the header; zero means the whole file.
type MalformedRecordError struct {
	Path   string
	Line   int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", loc, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", loc, e.Reason)
}
