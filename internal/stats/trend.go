// Package stats computes the dashboard aggregates: time-bucketed cost
// series, category distributions, and repair-frequency rankings. All
// functions are pure and read the full record set.
package stats

import (
	"fmt"

	"github.com/warelog/warelog/internal/model"
)

// MonthBucket is one month of an annual trend series.
type MonthBucket struct {
	// Month is the zero-padded month number, "01" through "12".
	Month  string
	Amount float64
	Count  int
}

// MonthlyTrend sums record totals per calendar month of the given year
// for the scoped kind. The series is always dense: twelve buckets,
// months without data at zero. KindAll scopes every kind.
func MonthlyTrend(records []model.Transaction, year string, kind model.Kind) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Month = fmt.Sprintf("%02d", i+1)
	}

	for _, tx := range records {
		if kind != model.KindAll && tx.Kind != kind {
			continue
		}
		if tx.Year() != year {
			continue
		}
		idx := monthIndex(tx.Month())
		if idx < 0 {
			continue
		}
		buckets[idx].Amount += tx.Total
		buckets[idx].Count++
	}

	return buckets
}

func monthIndex(month string) int {
	if len(month) != 2 {
		return -1
	}
	n := int(month[0]-'0')*10 + int(month[1]-'0')
	if n < 1 || n > 12 {
		return -1
	}
	return n - 1
}
