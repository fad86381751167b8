package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warelog/warelog/internal/model"
)

func sampleRecords() []model.Transaction {
	return []model.Transaction{
		{
			ID: "TX1", Date: "2024-03-01", Kind: model.KindInbound,
			MaterialName: "Widget", Quantity: 3, UnitPrice: 150, Total: 450,
			MachineCategory: "BA", AccountCategory: "A", Operator: "chen",
		},
		{
			ID: "TX2", Date: "2024-03-05", Kind: model.KindInbound,
			MaterialName: "Board", Quantity: 1, UnitPrice: 200, Total: 200,
			MachineCategory: "BA", AccountCategory: "B", Operator: "lin",
		},
		{
			ID: "RP1", Date: "2024-03-10", Kind: model.KindRepair,
			MaterialName: "Fan", Quantity: 1, Total: 1200,
			SN: "SN9", FaultReason: "stuck", SentDate: "2024-03-11", Operator: "chen",
		},
	}
}

func TestBuildOneSheetPerKindPresent(t *testing.T) {
	f, err := Build(sampleRecords())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"進貨", "維修"}, sheets, "absent kinds get no sheet")
}

func TestBuildStandardSheetContents(t *testing.T) {
	f, err := Build(sampleRecords())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("進貨")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header, two records, summary")

	assert.Equal(t, "日期", rows[0][1])
	assert.Equal(t, "總額", rows[0][8])

	assert.Equal(t, "TX1", rows[1][0])
	assert.Equal(t, "450", rows[1][8])

	assert.Equal(t, "總計", rows[3][0])
	assert.Equal(t, "2 筆", rows[3][1])
	assert.Equal(t, "650", rows[3][8], "monetary grand total in the 總額 column")
}

func TestBuildRepairSheetContents(t *testing.T) {
	f, err := Build(sampleRecords())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("維修")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header, one record, summary")

	header := rows[0]
	assert.Equal(t, "單據日期", header[1])
	assert.Equal(t, "設備序號(SN)", header[6])
	assert.NotContains(t, header, "單價", "repair layout has no unit price")
	assert.NotContains(t, header, "總額", "repair layout has no total column")

	assert.Equal(t, "RP1", rows[1][0])
	assert.Equal(t, "SN9", rows[1][6])
	assert.Equal(t, "stuck", rows[1][7])

	summary := rows[2]
	assert.Equal(t, "總計", summary[0])
	assert.Equal(t, "1 筆", summary[1])
	assert.Len(t, summary, 2, "repair summary is count only")
}

func TestBuildEmptyRecordSet(t *testing.T) {
	f, err := Build(nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Equal(t, "進貨", sheets[0], "an empty export still opens as a valid workbook")
}

func TestExportWritesDatedFile(t *testing.T) {
	dir := t.TempDir()

	path, err := Export(sampleRecords(), dir, "warelog")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, Filename("warelog")), path)
	assert.FileExists(t, path)
	assert.Contains(t, filepath.Base(path), model.Today())
}
