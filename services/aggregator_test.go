package services

import (
	"testing"

	"vote-tally/models"
	"vote-tally/utils"
)

func scenario() *models.Dataset {
	return &models.Dataset{
		Legislators: []models.Legislator{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
		Bills:       []models.Bill{{ID: 10, Title: "Act A", SponsorID: 1}},
		Votes:       []models.Vote{{ID: 100, BillID: 10}},
		VoteResults: []models.VoteResult{
			{VoteID: 100, LegislatorID: 1, VoteType: models.Support},
			{VoteID: 100, LegislatorID: 2, VoteType: models.Oppose},
		},
	}
}

func TestAggregateLegislatorsScenario(t *testing.T) {
	ds := scenario()
	stats := NewAggregator(utils.Discard()).AggregateLegislators(ds.Legislators, ds.VoteResults)

	want := []models.LegislatorStat{
		{ID: 1, Name: "Alice", NumSupportedBills: 1, NumOpposedBills: 0},
		{ID: 2, Name: "Bob", NumSupportedBills: 0, NumOpposedBills: 1},
	}
	rows := stats.Rows()
	if len(rows) != len(want) {
		t.Fatalf("rows: got %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if *rows[i] != w {
			t.Errorf("row %d: got %+v, want %+v", i, *rows[i], w)
		}
	}
}

func TestAggregateBillsScenario(t *testing.T) {
	ds := scenario()
	stats := NewAggregator(utils.Discard()).AggregateBills(ds.Bills, ds.Legislators, ds.Votes, ds.VoteResults)

	got, ok := stats.Get(10)
	if !ok {
		t.Fatal("bill 10 missing")
	}
	want := models.BillStat{ID: 10, Title: "Act A", PrimarySponsor: "Alice", SupporterCount: 1, OpposerCount: 1}
	if *got != want {
		t.Errorf("bill: got %+v, want %+v", *got, want)
	}
}

func TestAggregateLegislatorsZeroDefaults(t *testing.T) {
	legislators := []models.Legislator{{ID: 1, Name: "Alice"}, {ID: 3, Name: "Carol"}}
	results := []models.VoteResult{{VoteID: 100, LegislatorID: 1, VoteType: models.Support}}

	stats := NewAggregator(utils.Discard()).AggregateLegislators(legislators, results)

	carol, ok := stats.Get(3)
	if !ok {
		t.Fatal("legislator without votes must still have a stat")
	}
	if carol.NumSupportedBills != 0 || carol.NumOpposedBills != 0 {
		t.Errorf("Carol: got %+v, want zero counts", *carol)
	}
}

func TestAggregateIgnoresOtherVoteTypes(t *testing.T) {
	ds := scenario()
	ds.VoteResults = append(ds.VoteResults,
		models.VoteResult{VoteID: 100, LegislatorID: 1, VoteType: 0},
		models.VoteResult{VoteID: 100, LegislatorID: 2, VoteType: 3},
		models.VoteResult{VoteID: 100, LegislatorID: 2, VoteType: -1},
	)
	agg := NewAggregator(utils.Discard())

	counting := 0
	for _, r := range ds.VoteResults {
		if r.VoteType == models.Support || r.VoteType == models.Oppose {
			counting++
		}
	}

	legStats := agg.AggregateLegislators(ds.Legislators, ds.VoteResults)
	total := 0
	for _, s := range legStats.Rows() {
		total += s.NumSupportedBills + s.NumOpposedBills
	}
	if total > counting {
		t.Errorf("legislator totals %d exceed counting results %d", total, counting)
	}
	if total != 2 {
		t.Errorf("legislator totals: got %d, want 2", total)
	}

	bill, _ := agg.AggregateBills(ds.Bills, ds.Legislators, ds.Votes, ds.VoteResults).Get(10)
	if bill.SupporterCount != 1 || bill.OpposerCount != 1 {
		t.Errorf("bill counts: got %d/%d, want 1/1", bill.SupporterCount, bill.OpposerCount)
	}
}

func TestAggregateDropsUnresolvedReferences(t *testing.T) {
	ds := scenario()
	ds.Votes = append(ds.Votes, models.Vote{ID: 200, BillID: 99})
	ds.VoteResults = append(ds.VoteResults,
		models.VoteResult{VoteID: 100, LegislatorID: 42, VoteType: models.Support}, // unknown legislator
		models.VoteResult{VoteID: 300, LegislatorID: 1, VoteType: models.Oppose},   // unknown vote
		models.VoteResult{VoteID: 200, LegislatorID: 2, VoteType: models.Support},  // vote on unknown bill
	)
	agg := NewAggregator(utils.Discard())

	legStats := agg.AggregateLegislators(ds.Legislators, ds.VoteResults)
	if _, ok := legStats.Get(42); ok {
		t.Error("unknown legislator must not get a stat")
	}
	if legStats.Len() != 2 {
		t.Errorf("legislator stats: got %d, want 2", legStats.Len())
	}
	// Legislator counts do not depend on the vote resolving to a bill.
	alice, _ := legStats.Get(1)
	if alice.NumOpposedBills != 1 {
		t.Errorf("Alice opposed: got %d, want 1", alice.NumOpposedBills)
	}

	billStats := agg.AggregateBills(ds.Bills, ds.Legislators, ds.Votes, ds.VoteResults)
	if billStats.Len() != 1 {
		t.Errorf("bill stats: got %d, want 1", billStats.Len())
	}
	bill, _ := billStats.Get(10)
	if bill.SupporterCount != 2 || bill.OpposerCount != 1 {
		t.Errorf("bill 10: got %d/%d, want 2/1", bill.SupporterCount, bill.OpposerCount)
	}
}

func TestAggregateBillsSponsorResolution(t *testing.T) {
	legislators := []models.Legislator{{ID: 1, Name: "Alice"}}
	bills := []models.Bill{
		{ID: 10, Title: "Known", SponsorID: 1},
		{ID: 11, Title: "Orphan", SponsorID: 77},
	}

	stats := NewAggregator(utils.Discard()).AggregateBills(bills, legislators, nil, nil)

	tests := []struct {
		id   int
		want string
	}{
		{10, "Alice"},
		{11, models.UnknownSponsor},
	}
	for _, tt := range tests {
		s, ok := stats.Get(tt.id)
		if !ok {
			t.Fatalf("bill %d missing", tt.id)
		}
		if s.PrimarySponsor != tt.want {
			t.Errorf("bill %d sponsor: got %q, want %q", tt.id, s.PrimarySponsor, tt.want)
		}
		if s.SupporterCount != 0 || s.OpposerCount != 0 {
			t.Errorf("bill %d without votes: got %d/%d, want 0/0", tt.id, s.SupporterCount, s.OpposerCount)
		}
	}
}

func TestAggregatePreservesInputOrder(t *testing.T) {
	bills := []models.Bill{{ID: 30}, {ID: 10}, {ID: 20}}
	stats := NewAggregator(utils.Discard()).AggregateBills(bills, nil, nil, nil)

	for i, want := range []int{30, 10, 20} {
		if got := stats.Rows()[i].ID; got != want {
			t.Errorf("row %d: got id %d, want %d", i, got, want)
		}
	}
}
