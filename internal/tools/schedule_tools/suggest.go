package schedule_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/schedule"
)

// handleSuggestTimes proposes up to three candidate slots inside a resolved
// availability window, honoring work-hour and weekday preferences.
func handleSuggestTimes(_ context.Context, deps Deps, args map[string]any) (map[string]any, error) {
	avail, ok := args["availability_blocks"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("availability_blocks is required and must be an object")
	}

	tzName, loc, err := timeZoneArg(args)
	if err != nil {
		return nil, err
	}

	windowStart, err := requireString(avail, "window_start")
	if err != nil {
		return nil, err
	}
	windowEnd, err := requireString(avail, "window_end")
	if err != nil {
		return nil, err
	}

	ws, err := schedule.ParseTime("window_start", windowStart, loc)
	if err != nil {
		return nil, err
	}
	we, err := schedule.ParseTime("window_end", windowEnd, loc)
	if err != nil {
		return nil, err
	}

	busy, err := parseBusyBlocks(avail["busy"], loc)
	if err != nil {
		return nil, err
	}

	prefs, err := parsePreferences(args)
	if err != nil {
		return nil, err
	}

	w := schedule.Window{Start: ws, End: we, Busy: busy, Location: loc}
	slots := schedule.Suggest(w, prefs)

	deps.logger().Info("suggested slots",
		logging.Tool(ToolSuggestTimes),
		"candidates", len(slots),
	)

	candidates := make([]map[string]any, 0, len(slots))
	for _, s := range slots {
		candidates = append(candidates, map[string]any{
			"start": iso(s.Start),
			"end":   iso(s.End),
			"score": s.Score,
		})
	}

	return map[string]any{
		"candidates":         candidates,
		"window_start":       iso(ws),
		"window_end":         iso(we),
		"duration_minutes":   int(prefs.Duration / time.Minute),
		"organizer_timezone": tzName,
	}, nil
}

// parseBusyBlocks reads the busy list out of availability_blocks. Blocks
// that are not objects with start/end strings fail the call rather than
// being silently dropped, since they come from an earlier tool result.
func parseBusyBlocks(raw any, loc *time.Location) ([]interval.Interval, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("busy must be a list of {start, end} blocks")
	}

	busy := make([]interval.Interval, 0, len(list))
	for i, item := range list {
		block, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("busy[%d] must be an object", i)
		}
		startStr, err := requireString(block, "start")
		if err != nil {
			return nil, fmt.Errorf("busy[%d]: %w", i, err)
		}
		endStr, err := requireString(block, "end")
		if err != nil {
			return nil, fmt.Errorf("busy[%d]: %w", i, err)
		}
		start, err := schedule.ParseTime("start", startStr, loc)
		if err != nil {
			return nil, fmt.Errorf("busy[%d]: %w", i, err)
		}
		end, err := schedule.ParseTime("end", endStr, loc)
		if err != nil {
			return nil, fmt.Errorf("busy[%d]: %w", i, err)
		}
		busy = append(busy, interval.Interval{Start: start, End: end})
	}
	return busy, nil
}

// parsePreferences merges the optional preferences object over the
// defaults: work hours 13:00-17:00, no weekday restriction, 30 minutes.
func parsePreferences(args map[string]any) (schedule.Preferences, error) {
	prefs := schedule.DefaultPreferences()
	prefs.Duration = time.Duration(intArg(args, "duration_minutes", schedule.DefaultDurationMinutes)) * time.Minute

	raw, ok := args["preferences"].(map[string]any)
	if !ok {
		return prefs, nil
	}

	if hours, ok := raw["hours"].(map[string]any); ok {
		if v, ok := hours["start"].(string); ok {
			start, err := schedule.ParseTimeOfDay(v)
			if err != nil {
				return prefs, fmt.Errorf("preferences.hours.start: %w", err)
			}
			prefs.WorkHours.Start = start
		}
		if v, ok := hours["end"].(string); ok {
			end, err := schedule.ParseTimeOfDay(v)
			if err != nil {
				return prefs, fmt.Errorf("preferences.hours.end: %w", err)
			}
			prefs.WorkHours.End = end
		}
	}

	if rawDays, ok := raw["days"].([]any); ok {
		names := make([]string, 0, len(rawDays))
		for _, d := range rawDays {
			if name, ok := d.(string); ok {
				names = append(names, name)
			}
		}
		days, err := schedule.ParseWeekdays(names)
		if err != nil {
			return prefs, fmt.Errorf("preferences.days: %w", err)
		}
		prefs.Days = days
	}

	return prefs, nil
}
