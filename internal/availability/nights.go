package availability

import (
	"fmt"
	"time"
)

// nightLayout is the canonical key for one night: midnight UTC, RFC3339.
// It matches the timestamps recreation.gov uses in its availability maps, so
// requested nights compare against upstream keys by plain string equality.
const nightLayout = "2006-01-02T15:04:05Z"

// Night identifies a single night at day granularity. The fixed-width layout
// makes lexicographic order chronological.
type Night string

// NightOf returns the Night for the UTC calendar day containing t.
func NightOf(t time.Time) Night {
	return Night(normalizeDay(t).Format(nightLayout))
}

func normalizeDay(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}

// InvalidRangeError reports a date range whose end precedes its start.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// NightsInRange returns one Night per UTC calendar day in [start, end], both
// ends included, ascending. A same-day range yields one night. End before
// start returns *InvalidRangeError.
func NightsInRange(start, end time.Time) ([]Night, error) {
	first := normalizeDay(start)
	last := normalizeDay(end)
	if last.Before(first) {
		return nil, &InvalidRangeError{Start: first, End: last}
	}
	out := []Night{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, Night(d.Format(nightLayout)))
	}
	return out, nil
}

// MonthStarts returns the distinct first-of-month anchors covering nights,
// ascending. Input order is assumed ascending, as NightsInRange produces.
func MonthStarts(nights []Night) []time.Time {
	out := []time.Time{}
	for _, n := range nights {
		t, err := time.Parse(nightLayout, string(n))
		if err != nil {
			continue
		}
		anchor := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		if len(out) == 0 || !out[len(out)-1].Equal(anchor) {
			out = append(out, anchor)
		}
	}
	return out
}
