// Package engine computes filtered, ordered views over the record set.
// Everything here is pure: same records plus same filter state always
// yields the same output, so views are cheap to recompute on any change.
package engine

import (
	"sort"
	"strings"

	"github.com/warelog/warelog/internal/model"
)

// Filter applies the fixed filter pipeline and returns a new ordered
// slice. Stages run in a fixed order: status, tab scope, date range,
// keyword, then the sort. The input slice is never modified.
func Filter(records []model.Transaction, state model.FilterState) []model.Transaction {
	keyword := strings.ToLower(strings.TrimSpace(state.Keyword))

	out := make([]model.Transaction, 0, len(records))
	for _, tx := range records {
		if !matchStatus(tx, state) {
			continue
		}
		if !matchDateRange(tx.Date, state.StartDate, state.EndDate) {
			continue
		}
		if !matchKeyword(tx, keyword) {
			continue
		}
		out = append(out, tx)
	}

	sortNewestFirst(out)
	return out
}

// matchStatus covers both the cross-cutting status filter and the
// tab-implied default scoping. An active status filter wins over the
// tab: it is a query across every partition, whereas the tab only
// narrows the default view.
func matchStatus(tx model.Transaction, state model.FilterState) bool {
	if state.Status != model.StatusAll {
		switch state.Status {
		case model.StatusPendingInbound:
			return tx.PendingInbound()
		case model.StatusScrapped:
			return tx.IsScrapped
		case model.StatusRepairing:
			return tx.Repairing()
		}
		return false
	}

	switch state.ActiveView {
	case model.ViewRecords:
		// The records tab hides repairs and anything written off.
		if tx.Kind == model.KindRepair || tx.IsScrapped {
			return false
		}
		if state.Category != "" && state.Category != model.KindAll && tx.Kind != state.Category {
			return false
		}
	case model.ViewRepairs:
		if tx.Kind != model.KindRepair {
			return false
		}
	}
	return true
}

// matchDateRange checks inclusive civil-date bounds; an empty bound is
// unbounded. Civil dates compare correctly as strings.
func matchDateRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// matchKeyword requires a case-folded substring hit in at least one of
// the identifying fields. An empty keyword passes everything.
func matchKeyword(tx model.Transaction, keyword string) bool {
	if keyword == "" {
		return true
	}
	for _, field := range []string{
		tx.MaterialName,
		tx.MaterialNumber,
		tx.SN,
		tx.MachineNumber,
		tx.Operator,
	} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// sortNewestFirst orders by date descending with id descending as the
// tie-break, a deterministic total order for records sharing a date.
// Records with no usable date sort last.
func sortNewestFirst(records []model.Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].Date, records[j].Date
		if di != dj {
			return di > dj
		}
		return records[i].ID > records[j].ID
	})
}
