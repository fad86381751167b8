package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warelog/warelog/internal/model"
)

func TestSummarizeInbound(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-05-01", Kind: model.KindInbound, Total: 100},
		{ID: "2", Date: "2024-05-15", Kind: model.KindInbound, Total: 50},
		{ID: "3", Date: "2024-06-01", Kind: model.KindInbound, Total: 30},
		{ID: "4", Date: "2023-05-01", Kind: model.KindInbound, Total: 999},
		{ID: "5", Date: "2024-05-01", Kind: model.KindUsage, Total: 888},
	}

	s := SummarizeInbound(records, "2024", "05")
	assert.Equal(t, 180.0, s.YearAmount)
	assert.Equal(t, 3, s.YearCount)
	assert.Equal(t, 150.0, s.MonthAmount)
	assert.Equal(t, 2, s.MonthCount)
}

func TestAvailableYears(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2023-01-01"},
		{ID: "2", Date: "2025-01-01"},
		{ID: "3", Date: "2023-06-01"},
		{ID: "4", Date: ""},
	}

	assert.Equal(t, []string{"2025", "2024", "2023"}, AvailableYears(records, "2024"))
	assert.Equal(t, []string{"2024"}, AvailableYears(nil, "2024"))
}
