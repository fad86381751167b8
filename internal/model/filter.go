package model

// View names the tab-scoped default record views.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewRecords   View = "records"
	ViewRepairs   View = "repairs"
	ViewBatch     View = "batch"
)

// Status is the cross-cutting status filter. When set to anything but
// StatusAll it overrides the tab-implied kind filtering: a status filter
// is a query across the whole record set, a tab filter is only a
// default view.
type Status string

const (
	StatusAll            Status = "all"
	StatusPendingInbound Status = "pending_inbound"
	StatusScrapped       Status = "scrapped"
	StatusRepairing      Status = "repairing"
)

// Scope bounds the displayed window of a filtered list.
type Scope string

const (
	// ScopeRecent shows the newest ten records. Historically labelled
	// "monthly" in the UI, but it never looked at the calendar.
	ScopeRecent Scope = "recent"
	// ScopeAll pages through everything.
	ScopeAll Scope = "all"
)

// FilterState is the full filter tuple a view is computed from. It is
// transient UI state, never persisted with the records themselves.
type FilterState struct {
	ActiveView View
	Status     Status
	// Category narrows the records view to one non-repair kind.
	// Empty or KindAll means no narrowing.
	Category Kind
	// StartDate and EndDate are inclusive civil-date bounds; empty
	// means unbounded on that side.
	StartDate string
	EndDate   string
	Keyword   string
	ViewScope Scope
	Page      int
}

// KindAll is the category filter wildcard.
const KindAll Kind = "all"

// RankMode selects how a repair ranking is narrowed in time.
type RankMode string

const (
	// RankByYearMonth narrows by explicit year and optional month.
	RankByYearMonth RankMode = "standard"
	// RankByDateRange narrows by an explicit inclusive date range.
	RankByDateRange RankMode = "custom"
)

// AggregationScope parameterizes the aggregation engine independently
// of the list filters.
type AggregationScope struct {
	Mode RankMode
	// Year and Month apply in RankByYearMonth mode; "all" disables the
	// corresponding narrowing.
	Year  string
	Month string
	// StartDate and EndDate apply in RankByDateRange mode, inclusive.
	StartDate string
	EndDate   string
	// Limit truncates rankings; LimitAll keeps everything.
	Limit int
}

// LimitAll is the sentinel for an untruncated ranking.
const LimitAll = -1
