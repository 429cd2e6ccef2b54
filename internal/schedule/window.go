package schedule

import (
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
)

// Window is a resolved availability window: timezone-aware bounds, the busy
// intervals inside them, and the zone all times are expressed in. A Window is
// built per request and consumed once by the suggestion engine.
type Window struct {
	Start    time.Time
	End      time.Time
	Busy     []interval.Interval
	Location *time.Location
}

// Timestamp layouts accepted for window bounds and event times. Timestamps
// without an offset are interpreted in the organizer's zone.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTime parses an ISO-8601 timestamp. A timestamp carrying an explicit
// offset is converted to loc; one without an offset is assigned loc.
func ParseTime(field, value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			lastErr = err
			continue
		}
		return t.In(loc), nil
	}
	return time.Time{}, &ParseError{Field: field, Value: value, Err: lastErr}
}

// ResolveWindow parses the requested window bounds and rolls them forward by
// whole weeks until the window end is strictly after now. Weekly increments
// preserve the weekday and time-of-day the caller asked for. Busy intervals
// are carried through unchanged; degenerate ones are dropped.
func ResolveWindow(windowStart, windowEnd string, busy []interval.Interval, now time.Time, loc *time.Location) (Window, error) {
	ws, err := ParseTime("window_start", windowStart, loc)
	if err != nil {
		return Window{}, err
	}
	we, err := ParseTime("window_end", windowEnd, loc)
	if err != nil {
		return Window{}, err
	}

	for !we.After(now) {
		ws = ws.AddDate(0, 0, 7)
		we = we.AddDate(0, 0, 7)
	}

	var kept []interval.Interval
	for _, b := range busy {
		if b.IsValid() {
			kept = append(kept, interval.Interval{Start: b.Start.In(loc), End: b.End.In(loc)})
		}
	}

	return Window{Start: ws, End: we, Busy: kept, Location: loc}, nil
}
