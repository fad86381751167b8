package stats

import (
	"sort"

	"github.com/warelog/warelog/internal/model"
)

// RepairRank is one material's repair frequency.
type RepairRank struct {
	MaterialName string
	Count        int
}

// RepairRanking counts repair records per material name within the
// scope and returns the most frequently repaired materials first. The
// two narrowing modes are mutually exclusive: year/month in standard
// mode, the explicit date range in custom mode. Ranking is by
// occurrence count, not cost; ties keep first-encountered order.
func RepairRanking(records []model.Transaction, scope model.AggregationScope) []RepairRank {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, tx := range records {
		if tx.Kind != model.KindRepair {
			continue
		}
		if !inScope(tx, scope) {
			continue
		}
		if _, ok := counts[tx.MaterialName]; !ok {
			order = append(order, tx.MaterialName)
		}
		counts[tx.MaterialName]++
	}

	out := make([]RepairRank, 0, len(order))
	for _, name := range order {
		out = append(out, RepairRank{MaterialName: name, Count: counts[name]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if scope.Limit != model.LimitAll && scope.Limit > 0 && len(out) > scope.Limit {
		out = out[:scope.Limit]
	}
	return out
}

func inScope(tx model.Transaction, scope model.AggregationScope) bool {
	if scope.Mode == model.RankByDateRange {
		if scope.StartDate != "" && tx.Date < scope.StartDate {
			return false
		}
		if scope.EndDate != "" && tx.Date > scope.EndDate {
			return false
		}
		return true
	}

	if scope.Year != "" && scope.Year != "all" && tx.Year() != scope.Year {
		return false
	}
	if scope.Month != "" && scope.Month != "all" && tx.Month() != scope.Month {
		return false
	}
	return true
}
