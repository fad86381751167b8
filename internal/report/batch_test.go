package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warelog/warelog/internal/model"
)

func writeBatchFile(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseBatch(t *testing.T) {
	path := writeBatchFile(t, [][]any{
		{"類別", "日期", "料件名稱", "料件編號(PN)", "數量", "單價", "備註"},
		{"進貨", "2024-03-01", "Widget", "PN-1", 3, 150, "restock"},
		{"用料", "2024/3/5", "Cable", "", 2, 40, ""},
		{"", "", "", "", "", "", ""}, // blank row
	})

	records, err := ParseBatch(path)
	require.NoError(t, err)
	require.Len(t, records, 2, "blank rows are skipped")

	assert.Equal(t, model.KindInbound, records[0].Kind)
	assert.Equal(t, "Widget", records[0].MaterialName)
	assert.Equal(t, "PN-1", records[0].MaterialNumber)
	assert.Equal(t, 3, records[0].Quantity)
	assert.Equal(t, 150.0, records[0].UnitPrice)

	assert.Equal(t, model.KindUsage, records[1].Kind)
	assert.Equal(t, "2024-03-05", records[1].Date, "dates are normalized on the way in")
}

func TestParseBatchDefaults(t *testing.T) {
	path := writeBatchFile(t, [][]any{
		{"料件名稱", "數量"},
		{"Mystery", ""},
	})

	records, err := ParseBatch(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.KindInbound, records[0].Kind, "missing kind falls back to inbound")
	assert.Equal(t, 1, records[0].Quantity, "missing quantity defaults to one")
}

func TestParseBatchRejectsUselessFiles(t *testing.T) {
	path := writeBatchFile(t, [][]any{
		{"something", "else"},
		{"a", "b"},
	})
	_, err := ParseBatch(path)
	assert.Error(t, err, "a file without the material column is not a batch")

	path = writeBatchFile(t, [][]any{
		{"料件名稱"},
	})
	_, err = ParseBatch(path)
	assert.Error(t, err, "a header alone is not a batch")
}
