package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warelog/warelog/internal/model"
)

func yearScope(year string, limit int) model.AggregationScope {
	return model.AggregationScope{
		Mode:  model.RankByYearMonth,
		Year:  year,
		Month: "all",
		Limit: limit,
	}
}

func TestRepairRanking(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2025-03-01", Kind: model.KindRepair, MaterialName: "Widget"},
		{ID: "2", Date: "2025-03-10", Kind: model.KindRepair, MaterialName: "Sprocket"},
		{ID: "3", Date: "2025-03-20", Kind: model.KindRepair, MaterialName: "Widget"},
		{ID: "4", Date: "2025-03-25", Kind: model.KindUsage, MaterialName: "Widget"},
	}

	got := RepairRanking(records, yearScope("2025", 5))
	require.Len(t, got, 2)
	assert.Equal(t, RepairRank{MaterialName: "Widget", Count: 2}, got[0])
	assert.Equal(t, RepairRank{MaterialName: "Sprocket", Count: 1}, got[1])
}

func TestRepairRankingTieBreakStable(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2025-01-01", Kind: model.KindRepair, MaterialName: "Zeta"},
		{ID: "2", Date: "2025-01-02", Kind: model.KindRepair, MaterialName: "Alpha"},
	}

	got := RepairRanking(records, yearScope("2025", 5))
	require.Len(t, got, 2)
	assert.Equal(t, "Zeta", got[0].MaterialName, "equal counts keep original relative order")
	assert.Equal(t, "Alpha", got[1].MaterialName)
}

func TestRepairRankingLimit(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2025-01-01", Kind: model.KindRepair, MaterialName: "A"},
		{ID: "2", Date: "2025-01-02", Kind: model.KindRepair, MaterialName: "B"},
		{ID: "3", Date: "2025-01-03", Kind: model.KindRepair, MaterialName: "C"},
	}

	assert.Len(t, RepairRanking(records, yearScope("2025", 2)), 2)
	assert.Len(t, RepairRanking(records, yearScope("2025", model.LimitAll)), 3)
}

func TestRepairRankingMonthNarrowing(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2025-03-01", Kind: model.KindRepair, MaterialName: "A"},
		{ID: "2", Date: "2025-04-01", Kind: model.KindRepair, MaterialName: "B"},
	}

	scope := yearScope("2025", 5)
	scope.Month = "03"

	got := RepairRanking(records, scope)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].MaterialName)
}

func TestRepairRankingDateRangeMode(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2025-03-01", Kind: model.KindRepair, MaterialName: "A"},
		{ID: "2", Date: "2025-06-01", Kind: model.KindRepair, MaterialName: "B"},
	}

	scope := model.AggregationScope{
		Mode:      model.RankByDateRange,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		// Year would exclude everything if it leaked into range mode.
		Year:  "1999",
		Limit: 5,
	}

	got := RepairRanking(records, scope)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].MaterialName, "range mode must ignore year/month narrowing")
}

func TestRepairRankingAllYears(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-03-01", Kind: model.KindRepair, MaterialName: "A"},
		{ID: "2", Date: "2025-06-01", Kind: model.KindRepair, MaterialName: "A"},
	}

	got := RepairRanking(records, yearScope("all", 5))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
}
