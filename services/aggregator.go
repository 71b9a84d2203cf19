package services

import (
	"vote-tally/models"
	"vote-tally/utils"
)

// Aggregator joins vote results against legislators and bills.
// It holds no state between calls.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// AggregateLegislators counts, per legislator, the vote results recorded as
// support and as oppose. Every legislator gets a stat, in input order.
// Results for unknown legislators and with other vote types are skipped.
func (a *Aggregator) AggregateLegislators(legislators []models.Legislator, results []models.VoteResult) *models.LegislatorStats {
	stats := models.NewLegislatorStats(len(legislators))
	for _, leg := range legislators {
		stats.Add(&models.LegislatorStat{ID: leg.ID, Name: leg.Name})
	}

	dropped := 0
	for _, r := range results {
		s, ok := stats.Get(r.LegislatorID)
		if !ok {
			dropped++
			continue
		}
		switch r.VoteType {
		case models.Support:
			s.NumSupportedBills++
		case models.Oppose:
			s.NumOpposedBills++
		}
	}

	if dropped > 0 {
		a.logger.Debug("[aggregator] %d vote results reference unknown legislators", dropped)
	}
	return stats
}

// AggregateBills counts, per bill, supporters and opposers across all votes
// on the bill, and resolves the sponsor's name. The votes table is the only
// source of the vote-to-bill link.
func (a *Aggregator) AggregateBills(bills []models.Bill, legislators []models.Legislator, votes []models.Vote, results []models.VoteResult) *models.BillStats {
	names := make(map[int]string, len(legislators))
	for _, leg := range legislators {
		names[leg.ID] = leg.Name
	}

	stats := models.NewBillStats(len(bills))
	for _, b := range bills {
		sponsor, ok := names[b.SponsorID]
		if !ok {
			sponsor = models.UnknownSponsor
		}
		stats.Add(&models.BillStat{ID: b.ID, Title: b.Title, PrimarySponsor: sponsor})
	}

	voteBill := make(map[int]int, len(votes))
	for _, v := range votes {
		voteBill[v.ID] = v.BillID
	}

	dropped := 0
	for _, r := range results {
		billID, ok := voteBill[r.VoteID]
		if !ok {
			dropped++
			continue
		}
		s, ok := stats.Get(billID)
		if !ok {
			dropped++
			continue
		}
		switch r.VoteType {
		case models.Support:
			s.SupporterCount++
		case models.Oppose:
			s.OpposerCount++
		}
	}

	if dropped > 0 {
		a.logger.Debug("[aggregator] %d vote results do not resolve to a known bill", dropped)
	}
	return stats
}
