package models

// VoteType is the recorded choice of a legislator on a single vote.
type VoteType int

const (
	Support VoteType = 1
	Oppose  VoteType = 2
)

// UnknownSponsor is shown when a bill's sponsor_id matches no legislator.
const UnknownSponsor = "Unknown"

// Legislator is a row of legislators.csv.
type Legislator struct {
	ID   int
	Name string
}

// Bill is a row of bills.csv.
type Bill struct {
	ID        int
	Title     string
	SponsorID int
}

// Vote is a single roll-call event on one bill (votes.csv).
type Vote struct {
	ID     int
	BillID int
}

// VoteResult is one legislator's choice on one vote (vote_results.csv).
type VoteResult struct {
	VoteID       int
	LegislatorID int
	VoteType     VoteType
}

// Dataset holds the four input relations, fully loaded and typed.
type Dataset struct {
	Legislators []Legislator
	Bills       []Bill
	Votes       []Vote
	VoteResults []VoteResult
}
