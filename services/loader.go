package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"vote-tally/models"
	"vote-tally/storage"
	"vote-tally/utils"
)

// Input file names inside the data directory.
const (
	LegislatorsInput = "legislators"
	BillsInput       = "bills"
	VotesInput       = "votes"
	VoteResultsInput = "vote_results"
)

// Loader reads the four input relations and converts them into typed
// models, validating every field once at the boundary.
type Loader struct {
	reader storage.TableReader
	logger *utils.Logger
}

// NewLoader creates a Loader using reader for file access.
func NewLoader(reader storage.TableReader, logger *utils.Logger) *Loader {
	return &Loader{reader: reader, logger: logger}
}

// Paths names the four input files.
type Paths struct {
	Legislators string
	Bills       string
	Votes       string
	VoteResults string
}

// Load reads all inputs. Any unreadable file or malformed row aborts the
// load; nothing is returned partially.
func (l *Loader) Load(p Paths) (*models.Dataset, error) {
	ds := &models.Dataset{}
	var err error

	if ds.Legislators, err = l.loadLegislators(p.Legislators); err != nil {
		return nil, err
	}
	if ds.Bills, err = l.loadBills(p.Bills); err != nil {
		return nil, err
	}
	if ds.Votes, err = l.loadVotes(p.Votes); err != nil {
		return nil, err
	}
	if ds.VoteResults, err = l.loadVoteResults(p.VoteResults); err != nil {
		return nil, err
	}

	l.logger.Info("[loader] Loaded %d legislators, %d bills, %d votes, %d vote results",
		len(ds.Legislators), len(ds.Bills), len(ds.Votes), len(ds.VoteResults))
	return ds, nil
}

func (l *Loader) loadLegislators(path string) ([]models.Legislator, error) {
	records, err := l.read(path)
	if err != nil {
		return nil, err
	}
	seen := utils.NewIDSet(len(records))
	out := make([]models.Legislator, 0, len(records))
	for i, rec := range records {
		f := fields{path: path, line: rowLine(path, i), rec: rec}
		leg := models.Legislator{ID: f.num("id"), Name: f.text("name")}
		if err := f.uniqueID(seen, leg.ID); err != nil {
			return nil, err
		}
		out = append(out, leg)
	}
	return out, nil
}

func (l *Loader) loadBills(path string) ([]models.Bill, error) {
	records, err := l.read(path)
	if err != nil {
		return nil, err
	}
	seen := utils.NewIDSet(len(records))
	out := make([]models.Bill, 0, len(records))
	for i, rec := range records {
		f := fields{path: path, line: rowLine(path, i), rec: rec}
		bill := models.Bill{ID: f.num("id"), Title: f.text("title"), SponsorID: f.num("sponsor_id")}
		if err := f.uniqueID(seen, bill.ID); err != nil {
			return nil, err
		}
		out = append(out, bill)
	}
	return out, nil
}

func (l *Loader) loadVotes(path string) ([]models.Vote, error) {
	records, err := l.read(path)
	if err != nil {
		return nil, err
	}
	seen := utils.NewIDSet(len(records))
	out := make([]models.Vote, 0, len(records))
	for i, rec := range records {
		f := fields{path: path, line: rowLine(path, i), rec: rec}
		vote := models.Vote{ID: f.num("id"), BillID: f.num("bill_id")}
		if err := f.uniqueID(seen, vote.ID); err != nil {
			return nil, err
		}
		out = append(out, vote)
	}
	return out, nil
}

func (l *Loader) loadVoteResults(path string) ([]models.VoteResult, error) {
	records, err := l.read(path)
	if err != nil {
		return nil, err
	}
	out := make([]models.VoteResult, 0, len(records))
	for i, rec := range records {
		f := fields{path: path, line: rowLine(path, i), rec: rec}
		vr := models.VoteResult{
			VoteID:       f.num("vote_id"),
			LegislatorID: f.num("legislator_id"),
			VoteType:     models.VoteType(f.num("vote_type")),
		}
		if f.err != nil {
			return nil, f.err
		}
		out = append(out, vr)
	}
	return out, nil
}

func (l *Loader) read(path string) ([]storage.Record, error) {
	records, err := l.reader.ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	l.logger.Debug("[loader] Read %d rows from %s", len(records), path)
	return records, nil
}

// rowLine maps a record index to the position reported in errors: the
// file line for CSV (the header is line 1) and the element index for JSON.
func rowLine(path string, i int) int {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return i + 1
	}
	return i + 2
}

// fields converts one record, keeping the first conversion error.
type fields struct {
	path string
	line int
	rec  storage.Record
	err  error
}

func (f *fields) fail(name, reason string) {
	if f.err == nil {
		f.err = &models.MalformedRecordError{Path: f.path, Line: f.line, Field: name, Reason: reason}
	}
}

func (f *fields) text(name string) string {
	v, ok := f.rec[name]
	if !ok {
		f.fail(name, "missing column")
	}
	return v
}

func (f *fields) num(name string) int {
	v, ok := f.rec[name]
	if !ok {
		f.fail(name, "missing column")
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		f.fail(name, fmt.Sprintf("%q is not an integer", v))
		return 0
	}
	return n
}

func (f *fields) uniqueID(seen *utils.IDSet, id int) error {
	if f.err != nil {
		return f.err
	}
	if !seen.Add(id) {
		return &models.MalformedRecordError{Path: f.path, Line: f.line, Field: "id",
			Reason: fmt.Sprintf("duplicate id %d", id)}
	}
	return nil
}
