package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warelog/warelog/internal/model"
)

func TestMonthlyTrendIsDense(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-03-10", Kind: model.KindInbound, Total: 100},
		{ID: "2", Date: "2024-03-20", Kind: model.KindInbound, Total: 50},
		{ID: "3", Date: "2024-11-01", Kind: model.KindInbound, Total: 25},
	}

	series := MonthlyTrend(records, "2024", model.KindInbound)
	require.Len(t, series, 12, "series must always span twelve months")

	assert.Equal(t, "01", series[0].Month)
	assert.Equal(t, "12", series[11].Month)
	assert.Equal(t, 150.0, series[2].Amount)
	assert.Equal(t, 2, series[2].Count)
	assert.Equal(t, 25.0, series[10].Amount)
	assert.Zero(t, series[0].Amount)

	var sum float64
	for _, b := range series {
		sum += b.Amount
	}
	assert.Equal(t, 175.0, sum, "bucket sum must equal the scoped total")
}

func TestMonthlyTrendScoping(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-05-01", Kind: model.KindInbound, Total: 10},
		{ID: "2", Date: "2024-05-01", Kind: model.KindRepair, Total: 99},
		{ID: "3", Date: "2023-05-01", Kind: model.KindInbound, Total: 7},
		{ID: "4", Date: "", Kind: model.KindInbound, Total: 3},
	}

	series := MonthlyTrend(records, "2024", model.KindInbound)
	assert.Equal(t, 10.0, series[4].Amount, "other kinds, other years and dateless rows are excluded")

	all := MonthlyTrend(records, "2024", model.KindAll)
	assert.Equal(t, 109.0, all[4].Amount, "KindAll covers every kind")
}

func TestMonthlyTrendEmptyYear(t *testing.T) {
	series := MonthlyTrend(nil, "2024", model.KindInbound)
	require.Len(t, series, 12)
	for _, b := range series {
		assert.Zero(t, b.Amount)
		assert.Zero(t, b.Count)
	}
}
