// Package report writes the record set out as an xlsx workbook, one
// sheet per record kind present.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/warelog/warelog/internal/model"
)

var standardHeader = []any{
	"id", "日期", "類別", "料件名稱", "料件編號(PN)", "機台編號",
	"數量", "單價", "總額", "備註", "機台種類", "帳目類別", "操作人員",
}

var repairHeader = []any{
	"id", "單據日期", "類別", "料件名稱", "料件編號(PN)", "機台編號",
	"設備序號(SN)", "故障原因", "數量", "送修日期", "完修日期", "備註",
	"上機日期", "操作人員",
}

// Filename builds the export filename, suffixed with today's date.
func Filename(base string) string {
	return fmt.Sprintf("%s_%s.xlsx", base, model.Today())
}

// Export writes the workbook into dir and returns the full path. Kinds
// with no records get no sheet; an empty record set still produces a
// valid workbook with a single empty inbound sheet.
func Export(records []model.Transaction, dir, base string) (string, error) {
	f, err := Build(records)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	path := filepath.Join(dir, Filename(base))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

// Build assembles the workbook in memory. Callers own closing it.
func Build(records []model.Transaction) (*excelize.File, error) {
	byKind := make(map[model.Kind][]model.Transaction)
	for _, tx := range records {
		byKind[tx.Kind] = append(byKind[tx.Kind], tx)
	}

	f := excelize.NewFile()
	first := true
	for _, kind := range model.Kinds {
		rows, ok := byKind[kind]
		if !ok && !(first && len(records) == 0 && kind == model.KindInbound) {
			continue
		}

		sheet := string(kind)
		if first {
			// Rename the workbook's default sheet instead of leaving an
			// empty Sheet1 behind.
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
		}

		if err := writeSheet(f, sheet, kind, rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, kind model.Kind, records []model.Transaction) error {
	header := standardHeader
	if kind == model.KindRepair {
		header = repairHeader
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var total float64
	row := 2
	for _, tx := range records {
		values := standardRow(tx)
		if kind == model.KindRepair {
			values = repairRow(tx)
		}
		total += tx.Total

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	if err := writeSummary(f, sheet, kind, row, len(records), total); err != nil {
		return err
	}

	end, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", end, 14); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}

// writeSummary appends the trailing totals row. Repairs get a count
// only; everything else also gets the monetary grand total in the 總額
// column. Quantities are never totalled, mixed units make the sum
// meaningless.
func writeSummary(f *excelize.File, sheet string, kind model.Kind, row, count int, total float64) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address summary row: %w", err)
	}

	summary := []any{"總計", fmt.Sprintf("%d 筆", count)}
	if err := f.SetSheetRow(sheet, cell, &summary); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}

	if kind != model.KindRepair {
		// Column I is 總額 on the standard layout.
		totalCell, err := excelize.CoordinatesToCellName(9, row)
		if err != nil {
			return fmt.Errorf("failed to address summary total: %w", err)
		}
		if err := f.SetCellValue(sheet, totalCell, total); err != nil {
			return fmt.Errorf("failed to write summary total: %w", err)
		}
	}
	return nil
}

func standardRow(tx model.Transaction) []any {
	return []any{
		tx.ID, tx.Date, string(tx.Kind), tx.MaterialName, tx.MaterialNumber,
		tx.MachineNumber, tx.Quantity, tx.UnitPrice, tx.Total, tx.Note,
		tx.MachineCategory, tx.AccountCategory, tx.Operator,
	}
}

func repairRow(tx model.Transaction) []any {
	return []any{
		tx.ID, tx.Date, string(tx.Kind), tx.MaterialName, tx.MaterialNumber,
		tx.MachineNumber, tx.SN, tx.FaultReason, tx.Quantity, tx.SentDate,
		tx.RepairDate, tx.Note, tx.InstallDate, tx.Operator,
	}
}
