package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/warelog/warelog/internal/model"
)

// ParseBatch reads records for a batch submit from the active sheet of
// an xlsx file. The header row names the columns; order is free and
// the headers match the standard export layout. Rows with no material
// name are skipped.
func ParseBatch(path string) ([]model.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("batch file has no data rows")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["料件名稱"]; !ok {
		return nil, fmt.Errorf("batch file is missing the 料件名稱 column")
	}

	records := make([]model.Transaction, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := cell("料件名稱")
		if name == "" {
			continue
		}

		kind := model.Kind(cell("類別"))
		if !kind.Valid() {
			kind = model.KindInbound
		}

		tx := model.Transaction{
			Kind:            kind,
			Date:            model.CivilDate(cell("日期")),
			MaterialName:    name,
			MaterialNumber:  cell("料件編號(PN)"),
			MachineCategory: cell("機台種類"),
			MachineNumber:   cell("機台編號"),
			Quantity:        parseInt(cell("數量")),
			UnitPrice:       parseFloat(cell("單價")),
			Note:            cell("備註"),
			AccountCategory: cell("帳目類別"),
		}
		if tx.Quantity == 0 {
			tx.Quantity = 1
		}
		records = append(records, tx)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("batch file has no usable rows")
	}
	return records, nil
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
