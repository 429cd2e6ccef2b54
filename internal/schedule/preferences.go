package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default preferences applied when the caller supplies none: an afternoon
// work-hour window, no weekday restriction, 30-minute meetings.
const (
	DefaultDurationMinutes = 30
	defaultWorkStart       = "13:00"
	defaultWorkEnd         = "17:00"
)

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, &ParseError{Field: "time of day", Value: value}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, &ParseError{Field: "time of day", Value: value, Err: err}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, &ParseError{Field: "time of day", Value: value, Err: err}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, &ParseError{Field: "time of day", Value: value}
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// On anchors the time-of-day on the calendar day of t, in t's location.
func (td TimeOfDay) On(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, td.Hour, td.Minute, 0, 0, t.Location())
}

func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", td.Hour, td.Minute)
}

// WorkHours is the preferred start and end time-of-day for meetings.
type WorkHours struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Preferences constrain slot generation. The zero value is not useful; use
// DefaultPreferences and override fields from request arguments.
type Preferences struct {
	WorkHours WorkHours
	// Days restricts slots to the given weekdays. An empty map means no
	// restriction.
	Days     map[time.Weekday]bool
	Duration time.Duration
}

// DefaultPreferences returns the defaults: work hours 13:00-17:00 local, any
// weekday, 30-minute duration.
func DefaultPreferences() Preferences {
	start, _ := ParseTimeOfDay(defaultWorkStart)
	end, _ := ParseTimeOfDay(defaultWorkEnd)
	return Preferences{
		WorkHours: WorkHours{Start: start, End: end},
		Days:      map[time.Weekday]bool{},
		Duration:  DefaultDurationMinutes * time.Minute,
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday resolves a weekday name such as "Tue" or "tuesday".
func ParseWeekday(name string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if len(key) >= 3 {
		if day, ok := weekdayNames[key[:3]]; ok {
			return day, nil
		}
	}
	return 0, &ParseError{Field: "weekday", Value: name}
}

// ParseWeekdays resolves a list of weekday names into a set. Unknown names
// fail the whole list.
func ParseWeekdays(names []string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool, len(names))
	for _, name := range names {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days[day] = true
	}
	return days, nil
}
