package model

import (
	"time"
)

// The warehouse keeps its books on Taipei wall-clock dates regardless of
// where the process runs. A fixed offset avoids a tzdata dependency;
// Taiwan has not observed DST since 1979.
var warehouseZone = time.FixedZone("UTC+8", 8*60*60)

// dateLayouts are the inbound formats the remote store has been seen
// emitting, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
}

// Today returns the current civil date in the warehouse zone.
func Today() string {
	return time.Now().In(warehouseZone).Format("2006-01-02")
}

// CivilDate normalizes an arbitrary date string to zero-padded
// YYYY-MM-DD in the warehouse zone. Unparseable or empty input yields
// "": records with no usable date sort last and display as blank, they
// never fail the fetch.
func CivilDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.In(warehouseZone).Format("2006-01-02")
	}
	return ""
}

// ValidDate reports whether s is a well-formed zero-padded civil date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
