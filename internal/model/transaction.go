package model

// Kind is the closed transaction category. The values double as the
// remote store's sheet-partition names, so they stay in the warehouse's
// native labels.
type Kind string

const (
	KindInbound      Kind = "進貨"
	KindUsage        Kind = "用料"
	KindConstruction Kind = "建置"
	KindRepair       Kind = "維修"
)

// Kinds lists every kind in partition order.
var Kinds = []Kind{KindInbound, KindUsage, KindConstruction, KindRepair}

// Valid reports whether k is one of the closed enumeration.
func (k Kind) Valid() bool {
	switch k {
	case KindInbound, KindUsage, KindConstruction, KindRepair:
		return true
	}
	return false
}

// QuantityPriced reports whether total is derived from quantity times
// unit price for this kind. Repairs carry a flat fee instead.
func (k Kind) QuantityPriced() bool {
	return k != KindRepair
}

// Transaction represents one inventory event: an inbound purchase, a
// material usage, a construction allocation, or an equipment repair.
type Transaction struct {
	ID             string
	Date           string // civil date, YYYY-MM-DD
	Kind           Kind
	MaterialName   string
	MaterialNumber string

	MachineCategory string
	MachineNumber   string

	Quantity  int
	UnitPrice float64
	Total     float64

	Note     string
	Operator string

	// Non-repair kinds only.
	AccountCategory string

	// Inbound only. False means the goods are still pending receipt.
	IsReceived bool

	// Repair only.
	SN          string
	FaultReason string
	IsScrapped  bool
	SentDate    string
	RepairDate  string
	InstallDate string

	// Revision is a local-only monotonic counter bumped on every
	// optimistic write. It never goes on the wire; a background refetch
	// skips rows whose local revision advanced since its snapshot.
	Revision int64
}

// Repairing reports whether a repair record is still out for repair:
// no completion date and not written off as scrap.
func (t Transaction) Repairing() bool {
	return t.Kind == KindRepair && t.RepairDate == "" && !t.IsScrapped
}

// PendingInbound reports whether an inbound record is still awaiting
// physical receipt.
func (t Transaction) PendingInbound() bool {
	return t.Kind == KindInbound && !t.IsReceived
}

// Year returns the four-digit year prefix of the record date, or ""
// when the date is malformed.
func (t Transaction) Year() string {
	if len(t.Date) < 4 {
		return ""
	}
	return t.Date[:4]
}

// Month returns the zero-padded month component of the record date, or
// "" when the date is malformed.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[5:7]
}
