// Package remote talks to the spreadsheet-backed macro endpoint and
// translates between the wire shape and the internal record shape. All
// legacy field-name aliases live here; nothing past this boundary ever
// sees them.
package remote

import (
	"fmt"
	"strings"
)

// fieldAliases maps each canonical field to its legacy wire names, in
// resolution priority order. The sheet headers accumulated localized
// names over several backend revisions; the canonical name always wins
// when present.
var fieldAliases = map[string][]string{
	"id":              {"id", "ID", "編號"},
	"date":            {"date", "日期", "單據日期"},
	"type":            {"type", "類別", "紀錄類別"},
	"materialName":    {"materialName", "料件名稱", "維修零件/主體"},
	"materialNumber":  {"materialNumber", "料件編號", "料件編號(PN)"},
	"machineNumber":   {"機台編號", "machineNumber", "機台 ID"},
	"quantity":        {"quantity", "數量"},
	"unitPrice":       {"unitPrice", "單價", "維修單價", "費用"},
	"total":           {"total", "總額", "維修總額", "小計", "結算總額"},
	"note":            {"note", "備註"},
	"machineCategory": {"機台種類", "machineCategory"},
	"operator":        {"操作人員", "operator"},
	"accountCategory": {"帳目類別", "accountCategory"},
	"isReceived":      {"是否收貨", "isReceived"},
	"sn":              {"sn", "序號", "設備序號(SN)"},
	"faultReason":     {"故障原因", "faultReason"},
	"isScrapped":      {"是否報廢", "isScrapped"},
	"sentDate":        {"送修日期", "sentDate"},
	"repairDate":      {"完修日期", "repairDate"},
	"installDate":     {"上機日期", "installDate"},
}

// resolve walks the alias list for a canonical field and returns the
// first value present in the raw record. Presence means non-nil; the
// zero coercions happen in the typed helpers below.
func resolve(raw map[string]any, field string) (any, bool) {
	for _, key := range fieldAliases[field] {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// stringField coerces the resolved value to a string, falling back to
// def when missing or empty.
func stringField(raw map[string]any, field, def string) string {
	v, ok := resolve(raw, field)
	if !ok {
		return def
	}
	s := strings.TrimSpace(toString(v))
	if s == "" {
		return def
	}
	return s
}

// numberField coerces the resolved value to a float, treating anything
// unparseable as zero. A single malformed cell must never sink a fetch.
func numberField(raw map[string]any, field string) float64 {
	v, ok := resolve(raw, field)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}

// boolField normalizes the wire's assorted truthy encodings to a
// strict boolean. Everything unrecognized is false.
func boolField(raw map[string]any, field string) bool {
	v, ok := resolve(raw, field)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		switch strings.TrimSpace(strings.ToLower(b)) {
		case "true", "1", "yes", "是":
			return true
		}
	}
	return false
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// Sheet cells hold numbers; an id of 20240301 must not come
		// back as "2.0240301e+07".
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}
