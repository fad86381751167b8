package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warelog/warelog/internal/model"
)

func allState() model.FilterState {
	return model.FilterState{
		ActiveView: model.ViewDashboard,
		Status:     model.StatusAll,
		Category:   model.KindAll,
		ViewScope:  model.ScopeAll,
		Page:       1,
	}
}

func ids(records []model.Transaction) []string {
	out := make([]string, 0, len(records))
	for _, tx := range records {
		out = append(out, tx.ID)
	}
	return out
}

func TestFilterPendingInbound(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-03-01", Kind: model.KindInbound, IsReceived: false},
	}

	state := allState()
	state.Status = model.StatusPendingInbound

	got := Filter(records, state)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterStatusExclusivity(t *testing.T) {
	records := []model.Transaction{
		{ID: "in-pending", Date: "2024-01-01", Kind: model.KindInbound},
		{ID: "in-received", Date: "2024-01-02", Kind: model.KindInbound, IsReceived: true},
		{ID: "usage", Date: "2024-01-03", Kind: model.KindUsage},
		{ID: "repairing", Date: "2024-01-04", Kind: model.KindRepair},
		{ID: "repaired", Date: "2024-01-05", Kind: model.KindRepair, RepairDate: "2024-02-01"},
		{ID: "scrapped", Date: "2024-01-06", Kind: model.KindRepair, IsScrapped: true},
	}

	tests := []struct {
		name   string
		status model.Status
		want   []string
	}{
		{
			name:   "pending inbound only returns unreceived inbound",
			status: model.StatusPendingInbound,
			want:   []string{"in-pending"},
		},
		{
			name:   "scrapped returns any record carrying the flag",
			status: model.StatusScrapped,
			want:   []string{"scrapped"},
		},
		{
			name:   "repairing excludes completed and scrapped repairs",
			status: model.StatusRepairing,
			want:   []string{"repairing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := allState()
			state.Status = tt.status
			assert.Equal(t, tt.want, ids(Filter(records, state)))
		})
	}
}

func TestFilterStatusOverridesTab(t *testing.T) {
	// A status filter is a cross-cutting query: selecting pending
	// inbound while on the repairs tab still returns inbound records.
	records := []model.Transaction{
		{ID: "in", Date: "2024-01-01", Kind: model.KindInbound},
		{ID: "rp", Date: "2024-01-02", Kind: model.KindRepair},
	}

	state := allState()
	state.ActiveView = model.ViewRepairs
	state.Status = model.StatusPendingInbound

	assert.Equal(t, []string{"in"}, ids(Filter(records, state)))
}

func TestFilterTabScoping(t *testing.T) {
	records := []model.Transaction{
		{ID: "in", Date: "2024-01-05", Kind: model.KindInbound},
		{ID: "us", Date: "2024-01-04", Kind: model.KindUsage},
		{ID: "co", Date: "2024-01-03", Kind: model.KindConstruction},
		{ID: "rp", Date: "2024-01-02", Kind: model.KindRepair},
		{ID: "sc", Date: "2024-01-01", Kind: model.KindRepair, IsScrapped: true},
	}

	t.Run("records tab hides repairs and scrapped", func(t *testing.T) {
		state := allState()
		state.ActiveView = model.ViewRecords
		assert.Equal(t, []string{"in", "us", "co"}, ids(Filter(records, state)))
	})

	t.Run("records tab with category filter", func(t *testing.T) {
		state := allState()
		state.ActiveView = model.ViewRecords
		state.Category = model.KindUsage
		assert.Equal(t, []string{"us"}, ids(Filter(records, state)))
	})

	t.Run("repairs tab keeps only repairs", func(t *testing.T) {
		state := allState()
		state.ActiveView = model.ViewRepairs
		assert.Equal(t, []string{"rp", "sc"}, ids(Filter(records, state)))
	})
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	records := []model.Transaction{
		{ID: "before", Date: "2024-02-29", Kind: model.KindUsage},
		{ID: "start", Date: "2024-03-01", Kind: model.KindUsage},
		{ID: "mid", Date: "2024-03-15", Kind: model.KindUsage},
		{ID: "end", Date: "2024-03-31", Kind: model.KindUsage},
		{ID: "after", Date: "2024-04-01", Kind: model.KindUsage},
	}

	state := allState()
	state.StartDate = "2024-03-01"
	state.EndDate = "2024-03-31"

	assert.Equal(t, []string{"end", "mid", "start"}, ids(Filter(records, state)))
}

func TestFilterDateOpenBounds(t *testing.T) {
	records := []model.Transaction{
		{ID: "a", Date: "2024-01-01", Kind: model.KindUsage},
		{ID: "b", Date: "2024-06-01", Kind: model.KindUsage},
	}

	state := allState()
	state.EndDate = "2024-03-01"
	assert.Equal(t, []string{"a"}, ids(Filter(records, state)))

	state = allState()
	state.StartDate = "2024-03-01"
	assert.Equal(t, []string{"b"}, ids(Filter(records, state)))
}

func TestFilterKeyword(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-01-01", Kind: model.KindUsage, MaterialName: "Widget Board"},
		{ID: "2", Date: "2024-01-02", Kind: model.KindUsage, MaterialNumber: "PN-WIDGET-7"},
		{ID: "3", Date: "2024-01-03", Kind: model.KindRepair, SN: "SN123widget"},
		{ID: "4", Date: "2024-01-04", Kind: model.KindUsage, MachineNumber: "M-05"},
		{ID: "5", Date: "2024-01-05", Kind: model.KindUsage, Operator: "chen"},
	}

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{name: "matches across name number and sn", keyword: "widget", want: []string{"3", "2", "1"}},
		{name: "case insensitive", keyword: "WiDgEt", want: []string{"3", "2", "1"}},
		{name: "machine number", keyword: "m-05", want: []string{"4"}},
		{name: "operator", keyword: "chen", want: []string{"5"}},
		{name: "whitespace only is a no-op", keyword: "   ", want: []string{"5", "4", "3", "2", "1"}},
		{name: "no match", keyword: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := allState()
			state.Keyword = tt.keyword
			assert.Equal(t, tt.want, ids(Filter(records, state)))
		})
	}
}

func TestFilterKeywordAndDateCompose(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-01-01", Kind: model.KindUsage, MaterialName: "Widget"},
		{ID: "2", Date: "2024-06-01", Kind: model.KindUsage, MaterialName: "Widget"},
		{ID: "3", Date: "2024-06-01", Kind: model.KindUsage, MaterialName: "Sprocket"},
	}

	state := allState()
	state.Keyword = "widget"
	state.StartDate = "2024-05-01"

	assert.Equal(t, []string{"2"}, ids(Filter(records, state)))
}

func TestFilterSortOrder(t *testing.T) {
	records := []model.Transaction{
		{ID: "a", Date: "2024-01-10", Kind: model.KindUsage},
		{ID: "b", Date: "2024-01-10", Kind: model.KindUsage},
		{ID: "c", Date: "2024-01-09", Kind: model.KindUsage},
	}

	// Equal dates break ties by id descending.
	assert.Equal(t, []string{"b", "a", "c"}, ids(Filter(records, allState())))
}

func TestFilterMalformedDateSortsLast(t *testing.T) {
	records := []model.Transaction{
		{ID: "ok", Date: "2024-01-01", Kind: model.KindUsage},
		{ID: "blank", Date: "", Kind: model.KindUsage},
	}

	assert.Equal(t, []string{"ok", "blank"}, ids(Filter(records, allState())))
}

func TestFilterDeterministicAndIdempotent(t *testing.T) {
	records := []model.Transaction{
		{ID: "1", Date: "2024-03-05", Kind: model.KindInbound, MaterialName: "Widget"},
		{ID: "2", Date: "2024-03-05", Kind: model.KindUsage, MaterialName: "Widget"},
		{ID: "3", Date: "2024-02-01", Kind: model.KindRepair, MaterialName: "Widget"},
		{ID: "4", Date: "", Kind: model.KindUsage, MaterialName: "Widget"},
	}

	state := allState()
	state.Keyword = "widget"

	first := Filter(records, state)
	second := Filter(records, state)
	assert.Equal(t, first, second, "same input must yield identical output")

	again := Filter(first, state)
	assert.Equal(t, first, again, "re-filtering a filtered list is a no-op")
}
