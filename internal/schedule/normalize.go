package schedule

import (
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
)

// NormalizeEvent validates and normalizes a chosen slot before it is
// committed to the calendar backend. Both timestamps are coerced into loc.
// A slot whose end has already passed is rolled forward by the minimal whole
// number of weeks that puts it after now, preserving weekday and time-of-day.
// The end-after-start invariant is checked last and never auto-corrected.
func NormalizeEvent(start, end string, loc *time.Location, now time.Time) (interval.Interval, error) {
	startAt, err := ParseTime("start_time", start, loc)
	if err != nil {
		return interval.Interval{}, err
	}
	endAt, err := ParseTime("end_time", end, loc)
	if err != nil {
		return interval.Interval{}, err
	}

	nowLocal := now.In(loc)
	if !endAt.After(nowLocal) {
		days := int(nowLocal.Sub(endAt) / (24 * time.Hour))
		weeks := days/7 + 1
		startAt = startAt.AddDate(0, 0, 7*weeks)
		endAt = endAt.AddDate(0, 0, 7*weeks)
	}

	if !endAt.After(startAt) {
		return interval.Interval{}, &ValidationError{Reason: "end_time must be after start_time"}
	}

	return interval.Interval{Start: startAt, End: endAt}, nil
}
