package stats

import (
	"sort"

	"github.com/warelog/warelog/internal/model"
)

// InboundSummary is the dashboard headline: yearly procurement volume
// plus the running month when the selected year is the current one.
type InboundSummary struct {
	YearAmount  float64
	YearCount   int
	MonthAmount float64
	MonthCount  int
}

// SummarizeInbound totals inbound records for the given year. The
// month figures cover currentMonth of that year and only mean anything
// when the caller selected the current year.
func SummarizeInbound(records []model.Transaction, year, currentMonth string) InboundSummary {
	var s InboundSummary
	for _, tx := range records {
		if tx.Kind != model.KindInbound || tx.Year() != year {
			continue
		}
		s.YearAmount += tx.Total
		s.YearCount++
		if tx.Month() == currentMonth {
			s.MonthAmount += tx.Total
			s.MonthCount++
		}
	}
	return s
}

// AvailableYears lists every four-digit year present in the record
// set, newest first. The fallback year is included even when no record
// carries it so a fresh install still has a selectable year.
func AvailableYears(records []model.Transaction, fallback string) []string {
	seen := make(map[string]bool)
	if fallback != "" {
		seen[fallback] = true
	}
	for _, tx := range records {
		y := tx.Year()
		if len(y) == 4 {
			seen[y] = true
		}
	}

	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
