package models

import "strconv"

// Output column orders for the two summary tables.
var (
	LegislatorColumns = []string{"id", "name", "num_supported_bills", "num_opposed_bills"}
	BillColumns       = []string{"id", "title", "supporter_count", "opposer_count", "primary_sponsor"}
)

// LegislatorStat is the per-legislator support/oppose tally.
type LegislatorStat struct {
	ID                int
	Name              string
	NumSupportedBills int
	NumOpposedBills   int
}

// Field returns the column value used by the table writer.
func (s *LegislatorStat) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(s.ID), true
	case "name":
		return s.Name, true
	case "num_supported_bills":
		return strconv.Itoa(s.NumSupportedBills), true
	case "num_opposed_bills":
		return strconv.Itoa(s.NumOpposedBills), true
	}
	return "", false
}

// BillStat is the per-bill supporter/opposer tally.
type BillStat struct {
	ID             int
	Title          string
	PrimarySponsor string
	SupporterCount int
	OpposerCount   int
}

// Field returns the column value used by the table writer.
func (s *BillStat) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(s.ID), true
	case "title":
		return s.Title, true
	case "primary_sponsor":
		return s.PrimarySponsor, true
	case "supporter_count":
		return strconv.Itoa(s.SupporterCount), true
	case "opposer_count":
		return strconv.Itoa(s.OpposerCount), true
	}
	return "", false
}

// LegislatorStats maps legislator id to its stat and keeps input order.
type LegislatorStats struct {
	order []*LegislatorStat
	byID  map[int]*LegislatorStat
}

// NewLegislatorStats returns an empty collection sized for n legislators.
func NewLegislatorStats(n int) *LegislatorStats {
	return &LegislatorStats{
		order: make([]*LegislatorStat, 0, n),
		byID:  make(map[int]*LegislatorStat, n),
	}
}

// Add appends a stat. A repeated id replaces the stored value in place.
func (c *LegislatorStats) Add(s *LegislatorStat) {
	if old, ok := c.byID[s.ID]; ok {
		*old = *s
		return
	}
	c.byID[s.ID] = s
	c.order = append(c.order, s)
}

// Get returns the stat for id.
func (c *LegislatorStats) Get(id int) (*LegislatorStat, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Rows returns the stats in insertion order.
func (c *LegislatorStats) Rows() []*LegislatorStat { return c.order }

func (c *LegislatorStats) Len() int { return len(c.order) }

// BillStats maps bill id to its stat and keeps input order.
type BillStats struct {
	order []*BillStat
	byID  map[int]*BillStat
}

// NewBillStats returns an empty collection sized for n bills.
func NewBillStats(n int) *BillStats {
	return &BillStats{
		order: make([]*BillStat, 0, n),
		byID:  make(map[int]*BillStat, n),
	}
}

// Add appends a stat. A repeated id replaces the stored value in place.
func (c *BillStats) Add(s *BillStat) {
	if old, ok := c.byID[s.ID]; ok {
		*old = *s
		return
	}
	c.byID[s.ID] = s
	c.order = append(c.order, s)
}

func (c *BillStats) Get(id int) (*BillStat, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Rows returns the stats in insertion order.
func (c *BillStats) Rows() []*BillStat { return c.order }

func (c *BillStats) Len() int { return len(c.order) }

// SummaryReport is the console digest computed after aggregation.
type SummaryReport struct {
	TotalLegislators  int
	TotalBills        int
	SupportVotes      int
	OpposeVotes       int
	TopSupported      []*BillStat
	MostActive        *LegislatorStat
	SilentLegislators int
	UnvotedBills      int
}
