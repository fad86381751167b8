package engine

import "github.com/warelog/warelog/internal/model"

const (
	// RecentCount is the window size of the recent scope.
	RecentCount = 10
	// PageSize is the fixed page length of the paged scope.
	PageSize = 15
)

// Paginate derives the bounded display window from an already-filtered
// list. The recent scope ignores the page number entirely. Pages out of
// range yield an empty window; clamping is the caller's job.
func Paginate(filtered []model.Transaction, scope model.Scope, page int) []model.Transaction {
	if scope == model.ScopeRecent {
		if len(filtered) > RecentCount {
			return filtered[:RecentCount]
		}
		return filtered
	}

	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// PageCount returns how many pages the paged scope spans.
func PageCount(filteredLen int) int {
	if filteredLen <= 0 {
		return 0
	}
	return (filteredLen + PageSize - 1) / PageSize
}
