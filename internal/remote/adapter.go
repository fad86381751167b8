package remote

import (
	"fmt"

	"github.com/warelog/warelog/internal/model"
)

// Decode defaults for fields the sheet may leave blank.
const (
	defaultOperator        = "系統"
	defaultMaterialName    = "未命名"
	defaultAccountCategory = "A"
	defaultMachineCategory = "BA"
)

// decodeRecord turns one raw wire record into a Transaction. Every
// field is defensively coerced; index seeds a fallback id for rows
// that never got one.
func decodeRecord(raw map[string]any, index int) model.Transaction {
	kind := model.Kind(stringField(raw, "type", string(model.KindInbound)))
	if !kind.Valid() {
		kind = model.KindInbound
	}

	date := model.CivilDate(stringField(raw, "date", ""))
	if date == "" {
		date = model.Today()
	}

	return model.Transaction{
		ID:              stringField(raw, "id", fmt.Sprintf("row-%d", index+1)),
		Date:            date,
		Kind:            kind,
		MaterialName:    stringField(raw, "materialName", defaultMaterialName),
		MaterialNumber:  stringField(raw, "materialNumber", ""),
		MachineCategory: stringField(raw, "machineCategory", defaultMachineCategory),
		MachineNumber:   stringField(raw, "machineNumber", ""),
		Quantity:        int(numberField(raw, "quantity")),
		UnitPrice:       numberField(raw, "unitPrice"),
		Total:           numberField(raw, "total"),
		Note:            stringField(raw, "note", ""),
		Operator:        stringField(raw, "operator", defaultOperator),
		AccountCategory: stringField(raw, "accountCategory", defaultAccountCategory),
		IsReceived:      boolField(raw, "isReceived"),
		SN:              stringField(raw, "sn", ""),
		FaultReason:     stringField(raw, "faultReason", ""),
		IsScrapped:      boolField(raw, "isScrapped"),
		SentDate:        model.CivilDate(stringField(raw, "sentDate", "")),
		RepairDate:      model.CivilDate(stringField(raw, "repairDate", "")),
		InstallDate:     model.CivilDate(stringField(raw, "installDate", "")),
	}
}

// encodeRecord builds the outbound field map. Only kind-appropriate
// optional fields are emitted, which is what keeps the "exactly one
// attribute group populated" invariant true on the sheet side.
func encodeRecord(t model.Transaction) map[string]any {
	data := map[string]any{
		"id":           t.ID,
		"date":         model.CivilDate(t.Date),
		"type":         string(t.Kind),
		"materialName": t.MaterialName,
		"機台編號":         t.MachineNumber,
		"quantity":     t.Quantity,
		"unitPrice":    t.UnitPrice,
		"total":        t.Total,
		"note":         t.Note,
		"operator":     t.Operator,
		"機台種類":         t.MachineCategory,
	}
	if t.MaterialNumber != "" {
		data["materialNumber"] = t.MaterialNumber
	}

	if t.Kind == model.KindRepair {
		data["sn"] = t.SN
		data["故障原因"] = t.FaultReason
		data["是否報廢"] = t.IsScrapped
		data["送修日期"] = model.CivilDate(t.SentDate)
		data["完修日期"] = model.CivilDate(t.RepairDate)
		data["上機日期"] = model.CivilDate(t.InstallDate)
		return data
	}

	data["帳目類別"] = t.AccountCategory
	if t.Kind == model.KindInbound {
		data["是否收貨"] = t.IsReceived
	}
	return data
}
