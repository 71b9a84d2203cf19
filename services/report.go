package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"vote-tally/models"
	"vote-tally/utils"
)

const topBills = 5

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(legislators *models.LegislatorStats, bills *models.BillStats) *models.SummaryReport {
	report := &models.SummaryReport{
		TotalLegislators: legislators.Len(),
		TotalBills:       bills.Len(),
	}

	for _, l := range legislators.Rows() {
		report.SupportVotes += l.NumSupportedBills
		report.OpposeVotes += l.NumOpposedBills
		active := l.NumSupportedBills + l.NumOpposedBills
		if active == 0 {
			report.SilentLegislators++
			continue
		}
		if report.MostActive == nil ||
			active > report.MostActive.NumSupportedBills+report.MostActive.NumOpposedBills {
			report.MostActive = l
		}
	}

	var voted []*models.BillStat
	for _, b := range bills.Rows() {
		if b.SupporterCount+b.OpposerCount == 0 {
			report.UnvotedBills++
		}
		if b.SupporterCount > 0 {
			voted = append(voted, b)
		}
	}

	// Stable so ties keep input order.
	sort.SliceStable(voted, func(i, j int) bool {
		return voted[i].SupporterCount > voted[j].SupporterCount
	})
	if len(voted) > topBills {
		voted = voted[:topBills]
	}
	report.TopSupported = voted

	return report
}

func (s *ReportService) Print(w io.Writer, r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  VOTE TALLY SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Legislators          : \033[1m%d\033[0m (%d without votes)\n", r.TotalLegislators, r.SilentLegislators)
	fmt.Fprintf(w, "  Bills                : \033[1m%d\033[0m (%d without votes)\n", r.TotalBills, r.UnvotedBills)
	fmt.Fprintf(w, "  Support votes counted: \033[1;32m%d\033[0m\n", r.SupportVotes)
	fmt.Fprintf(w, "  Oppose votes counted : \033[1;31m%d\033[0m\n", r.OpposeVotes)
	fmt.Fprintln(w)

	if r.MostActive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Active Legislator\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostActive.Name, 50))
		fmt.Fprintf(w, "  Supported : %d\n", r.MostActive.NumSupportedBills)
		fmt.Fprintf(w, "  Opposed   : %d\n", r.MostActive.NumOpposedBills)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Most Supported Bills\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopSupported) == 0 {
		fmt.Fprintf(w, "  No supported bills\n")
	} else {
		for i, b := range r.TopSupported {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-36s \033[1;32m%d\033[0m / \033[1;31m%d\033[0m\n",
				i+1, truncate(b.Title, 34), b.SupporterCount, b.OpposerCount)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
