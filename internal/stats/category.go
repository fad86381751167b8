package stats

import (
	"sort"

	"github.com/warelog/warelog/internal/model"
)

// UnclassifiedLabel groups records with no machine category.
const UnclassifiedLabel = "未分類"

// CategorySlice is one machine-category share of the yearly spend.
type CategorySlice struct {
	Name    string
	Amount  float64
	Percent float64
	Count   int
}

// CategoryBreakdown groups the scoped records by machine category and
// sums their totals, sorted by amount descending. month may be "" (or
// "all") to cover the whole year. Percentages are of the grand total
// and are zero, not NaN, when nothing matched.
func CategoryBreakdown(records []model.Transaction, year, month string, kind model.Kind) []CategorySlice {
	sums := make(map[string]*CategorySlice)
	order := make([]string, 0)

	for _, tx := range records {
		if kind != model.KindAll && tx.Kind != kind {
			continue
		}
		if tx.Year() != year {
			continue
		}
		if month != "" && month != "all" && tx.Month() != month {
			continue
		}
		name := tx.MachineCategory
		if name == "" {
			name = UnclassifiedLabel
		}
		slice, ok := sums[name]
		if !ok {
			slice = &CategorySlice{Name: name}
			sums[name] = slice
			order = append(order, name)
		}
		slice.Amount += tx.Total
		slice.Count++
	}

	var grand float64
	out := make([]CategorySlice, 0, len(order))
	for _, name := range order {
		grand += sums[name].Amount
		out = append(out, *sums[name])
	}

	if grand > 0 {
		for i := range out {
			out[i].Percent = out[i].Amount / grand * 100
		}
	}

	// Stable keeps first-encountered order for equal sums.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})

	return out
}
